package kmeans

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/breggo/bregman"
	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/divergence"
	"github.com/hupe1980/breggo/vector"
)

// Model is the frozen result of a training run: the surviving centers, the
// divergence that produced them, the total assignment cost, and per-cluster
// membership bitmaps over the training points. Models are immutable.
type Model struct {
	kind    divergence.Kind
	div     divergence.Divergence
	centers []bregman.Center
	cost    float64
	members []*roaring.Bitmap
}

// K returns the number of surviving centers. This may be smaller than the
// requested k when clusters emptied out or fewer distinct points existed.
func (m *Model) K() int { return len(m.centers) }

// Kind returns the divergence the model was trained with.
func (m *Model) Kind() divergence.Kind { return m.kind }

// Cost returns the total assignment cost: the weighted sum of each training
// point's divergence to its assigned center.
func (m *Model) Cost() float64 { return m.cost }

// Centers returns the inhomogeneous center coordinates.
func (m *Model) Centers() []vector.Dense {
	out := make([]vector.Dense, len(m.centers))
	for i := range m.centers {
		out[i] = m.centers[i].Inhomogeneous()
	}
	return out
}

// CenterPoints returns the centers in homogeneous coordinates.
func (m *Model) CenterPoints() []vector.Weighted {
	out := make([]vector.Weighted, len(m.centers))
	for i := range m.centers {
		out[i] = m.centers[i].Point()
	}
	return out
}

// ClusterMembers returns the training-point indices assigned to center i.
// Indices are positions in the training dataset's partition order.
func (m *Model) ClusterMembers(i int) *roaring.Bitmap { return m.members[i] }

// Predict returns the index of the nearest center and the distance to it.
// Returns (-1, +Inf) when every distance is non-finite.
func (m *Model) Predict(p vector.Weighted) (int, float64) {
	fx := m.div.FWeighted(p.Vec, p.Weight)
	return nearestCenter(fx, p, m.centers)
}

// Labels assigns every point of ds to its nearest center and returns the
// labels in partition order. Unassignable points get label -1.
func (m *Model) Labels(ctx context.Context, ds *dataset.Dataset) ([]int, error) {
	parts, err := dataset.MapPartitions(ctx, ds, func(_ int, part []vector.Weighted) ([]int, error) {
		labels := make([]int, len(part))
		for i, p := range part {
			labels[i], _ = m.Predict(p)
		}
		return labels, nil
	})
	if err != nil {
		return nil, err
	}

	labels := make([]int, 0, ds.Count())
	for _, part := range parts {
		labels = append(labels, part...)
	}
	return labels, nil
}

// RestoreModel rebuilds a model from persisted state. Centers are given in
// homogeneous coordinates; duals are recomputed. members may be nil.
func RestoreModel(kind divergence.Kind, centers []vector.Weighted, cost float64, members []*roaring.Bitmap) (*Model, error) {
	div, err := divergence.New(kind)
	if err != nil {
		return nil, err
	}

	cs := make([]bregman.Center, len(centers))
	for i, p := range centers {
		cs[i] = bregman.NewCenter(div, p)
	}
	if members == nil {
		members = make([]*roaring.Bitmap, len(centers))
		for i := range members {
			members[i] = roaring.New()
		}
	}
	return &Model{kind: kind, div: div, centers: cs, cost: cost, members: members}, nil
}

// assignAcc is the per-partition result of the final assignment pass.
type assignAcc struct {
	cost    float64
	members []*roaring.Bitmap
	counts  []int64
}

// buildModel freezes centers into a model by one final assignment pass that
// computes the total cost and the membership bitmaps. Centers that end up
// with no members are dropped; removing them cannot change any other point's
// nearest center.
func buildModel(ctx context.Context, div divergence.Divergence, kind divergence.Kind, ds *dataset.Dataset, centers []bregman.Center) (*Model, error) {
	if len(centers) == 0 {
		return &Model{kind: kind, div: div, cost: math.Inf(1)}, nil
	}

	// Global point indices are partition-relative plus the partition's base
	// offset, so bitmaps can be built per partition and merged with a union.
	offsets := make([]int, ds.NumPartitions())
	base := 0
	for i := 0; i < ds.NumPartitions(); i++ {
		offsets[i] = base
		base += len(ds.Partition(i))
	}

	parts, err := dataset.MapPartitions(ctx, ds, func(partition int, part []vector.Weighted) (*assignAcc, error) {
		acc := &assignAcc{
			members: make([]*roaring.Bitmap, len(centers)),
			counts:  make([]int64, len(centers)),
		}
		for j := range acc.members {
			acc.members[j] = roaring.New()
		}
		for i, p := range part {
			fx := div.FWeighted(p.Vec, p.Weight)
			best, d := nearestCenter(fx, p, centers)
			if best < 0 {
				continue
			}
			acc.cost += p.Weight * d
			acc.counts[best]++
			acc.members[best].Add(uint32(offsets[partition] + i))
		}
		return acc, nil
	})
	if err != nil {
		return nil, err
	}

	total := parts[0]
	for _, acc := range parts[1:] {
		total.cost += acc.cost
		for j := range total.members {
			total.members[j].Or(acc.members[j])
			total.counts[j] += acc.counts[j]
		}
	}

	kept := make([]bregman.Center, 0, len(centers))
	members := make([]*roaring.Bitmap, 0, len(centers))
	for j := range centers {
		if total.counts[j] == 0 {
			continue
		}
		kept = append(kept, centers[j])
		members = append(members, total.members[j])
	}
	if len(kept) == 0 {
		return &Model{kind: kind, div: div, cost: math.Inf(1)}, nil
	}

	return &Model{
		kind:    kind,
		div:     div,
		centers: kept,
		cost:    total.cost,
		members: members,
	}, nil
}
