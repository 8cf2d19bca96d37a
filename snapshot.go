package breggo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/breggo/codec"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/kmeans"
	"github.com/hupe1980/breggo/vector"
)

const (
	// snapshotMagic identifies breggo model snapshots (ASCII: "BRG1").
	snapshotMagic = 0x42524731
	// snapshotVersion is the current snapshot format version.
	snapshotVersion = 1
)

var (
	// ErrInvalidMagic is returned when a reader does not hold a snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for snapshots from an unknown format
	// version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")
	// ErrChecksumMismatch is returned when the payload fails verification.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)

// Compression selects the snapshot payload compression.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionS2   Compression = "s2"
	CompressionLZ4  Compression = "lz4"
)

// SnapshotOptions configure SaveModel.
type SnapshotOptions struct {
	// Codec encodes the payload. Defaults to codec.Default.
	Codec codec.Codec
	// Compression wraps the encoded payload. Defaults to CompressionS2.
	Compression Compression
	// IncludeMembers persists the per-cluster membership bitmaps.
	// They are only meaningful together with the training dataset.
	IncludeMembers bool
}

// modelSnapshot is the persisted model state. Centers are stored in
// homogeneous coordinates; duals are recomputed on load.
type modelSnapshot struct {
	Divergence string      `json:"divergence"`
	Cost       float64     `json:"cost"`
	Centers    [][]float64 `json:"centers"`
	Weights    []float64   `json:"weights"`
	Members    [][]byte    `json:"members,omitempty"`
}

// SaveModel writes a self-describing snapshot of m: a fixed header carrying
// the codec and compression names, followed by the checksummed payload. The
// header makes snapshots readable across configuration changes.
func SaveModel(w io.Writer, m *kmeans.Model, optFns ...func(*SnapshotOptions)) error {
	opts := SnapshotOptions{
		Codec:       codec.Default,
		Compression: CompressionS2,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	snap := modelSnapshot{
		Divergence: m.Kind().String(),
		Cost:       m.Cost(),
	}
	for _, p := range m.CenterPoints() {
		snap.Centers = append(snap.Centers, vector.DenseCopy(p.Vec))
		snap.Weights = append(snap.Weights, p.Weight)
	}
	if opts.IncludeMembers {
		for i := 0; i < m.K(); i++ {
			data, err := m.ClusterMembers(i).MarshalBinary()
			if err != nil {
				return fmt.Errorf("marshal members: %w", err)
			}
			snap.Members = append(snap.Members, data)
		}
	}

	payload, err := opts.Codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	payload, err = compress(opts.Compression, payload)
	if err != nil {
		return err
	}

	if err := writeHeader(w, opts.Codec.Name(), string(opts.Compression), payload); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// LoadModel reads a snapshot written by SaveModel and rebuilds the model,
// recomputing the center duals.
func LoadModel(r io.Reader) (*kmeans.Model, error) {
	codecName, compression, payload, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot codec %q", codecName)
	}
	payload, err = decompress(Compression(compression), payload)
	if err != nil {
		return nil, err
	}

	var snap modelSnapshot
	if err := c.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	kind, ok := divergence.KindByName(snap.Divergence)
	if !ok {
		return nil, fmt.Errorf("unknown divergence %q", snap.Divergence)
	}
	if len(snap.Centers) != len(snap.Weights) {
		return nil, fmt.Errorf("corrupt snapshot: %d centers but %d weights", len(snap.Centers), len(snap.Weights))
	}

	centers := make([]vector.Weighted, len(snap.Centers))
	for i, c := range snap.Centers {
		centers[i] = vector.NewWeighted(vector.Dense(c), snap.Weights[i])
	}

	var members []*roaring.Bitmap
	if snap.Members != nil {
		if len(snap.Members) != len(centers) {
			return nil, fmt.Errorf("corrupt snapshot: %d centers but %d member sets", len(centers), len(snap.Members))
		}
		for _, data := range snap.Members {
			rb := roaring.New()
			if err := rb.UnmarshalBinary(data); err != nil {
				return nil, fmt.Errorf("unmarshal members: %w", err)
			}
			members = append(members, rb)
		}
	}

	return kmeans.RestoreModel(kind, centers, snap.Cost, members)
}

func writeHeader(w io.Writer, codecName, compression string, payload []byte) error {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(snapshotMagic))
	binary.Write(&buf, binary.LittleEndian, uint32(snapshotVersion))
	writeString(&buf, codecName)
	writeString(&buf, compression)
	binary.Write(&buf, binary.LittleEndian, uint64(len(payload)))
	binary.Write(&buf, binary.LittleEndian, crc32.ChecksumIEEE(payload))
	_, err := w.Write(buf.Bytes())
	return err
}

func readSnapshot(r io.Reader) (codecName, compression string, payload []byte, err error) {
	var magic, version uint32
	if err = binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return "", "", nil, err
	}
	if magic != snapshotMagic {
		return "", "", nil, ErrInvalidMagic
	}
	if err = binary.Read(r, binary.LittleEndian, &version); err != nil {
		return "", "", nil, err
	}
	if version != snapshotVersion {
		return "", "", nil, ErrInvalidVersion
	}
	if codecName, err = readString(r); err != nil {
		return "", "", nil, err
	}
	if compression, err = readString(r); err != nil {
		return "", "", nil, err
	}

	var size uint64
	if err = binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", "", nil, err
	}
	var checksum uint32
	if err = binary.Read(r, binary.LittleEndian, &checksum); err != nil {
		return "", "", nil, err
	}

	payload = make([]byte, size)
	if _, err = io.ReadFull(r, payload); err != nil {
		return "", "", nil, err
	}
	if crc32.ChecksumIEEE(payload) != checksum {
		return "", "", nil, ErrChecksumMismatch
	}
	return codecName, compression, payload, nil
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint16(len(s)))
	buf.WriteString(s)
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func compress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return payload, nil
	case CompressionS2:
		var buf bytes.Buffer
		w := s2.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

func decompress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return payload, nil
	case CompressionS2:
		return io.ReadAll(s2.NewReader(bytes.NewReader(payload)))
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}
