// Package codec centralizes model snapshot encoding.
//
// Codec selection is a breaking-change boundary: snapshots store the codec
// name in their header, and bytes written by a codec can only be decoded by
// the same codec.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}

// ByName returns a built-in codec by its stable name.
//
// Snapshots are self-describing: they store the codec name in their header,
// and the reader selects the codec by name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
