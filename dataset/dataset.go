// Package dataset provides the partitioned point collection the clustering
// core runs against: an immutable, in-memory collection of weighted points
// with data-parallel map, aggregate and sampling primitives. It plays the
// role a distributed collection plays in a cluster setting; parallelism is
// per partition, coordinated with errgroup, and all operations observe
// context cancellation at partition granularity.
package dataset

import (
	"runtime"

	"github.com/hupe1980/breggo/vector"
)

// Dataset is an immutable partitioned collection of weighted points.
// All methods are safe for concurrent use.
type Dataset struct {
	parts  [][]vector.Weighted
	pinned bool
}

// FromSlice partitions points into numPartitions roughly equal chunks.
// numPartitions <= 0 defaults to GOMAXPROCS. The input slice is referenced,
// not copied; callers must not mutate it afterwards.
func FromSlice(points []vector.Weighted, numPartitions int) *Dataset {
	if numPartitions <= 0 {
		numPartitions = runtime.GOMAXPROCS(0)
	}
	if numPartitions > len(points) && len(points) > 0 {
		numPartitions = len(points)
	}
	if len(points) == 0 {
		return &Dataset{parts: [][]vector.Weighted{nil}}
	}

	parts := make([][]vector.Weighted, 0, numPartitions)
	chunk := (len(points) + numPartitions - 1) / numPartitions
	for start := 0; start < len(points); start += chunk {
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		parts = append(parts, points[start:end])
	}
	return &Dataset{parts: parts}
}

// FromPartitions wraps pre-partitioned points. Partitions are referenced,
// not copied.
func FromPartitions(parts [][]vector.Weighted) *Dataset {
	if len(parts) == 0 {
		parts = [][]vector.Weighted{nil}
	}
	return &Dataset{parts: parts}
}

// NumPartitions returns the partition count.
func (d *Dataset) NumPartitions() int { return len(d.parts) }

// Count returns the total number of points.
func (d *Dataset) Count() int {
	var n int
	for _, p := range d.parts {
		n += len(p)
	}
	return n
}

// Partition returns the i-th partition. The returned slice is read-only.
func (d *Dataset) Partition(i int) []vector.Weighted { return d.parts[i] }

// Collect materializes all points into a single slice. Intended only for
// collections known to be small (candidate pools), never the full point set
// of a large job.
func (d *Dataset) Collect() []vector.Weighted {
	out := make([]vector.Weighted, 0, d.Count())
	for _, p := range d.parts {
		out = append(out, p...)
	}
	return out
}

// Cache marks the dataset as retained across multiple passes. The in-memory
// implementation is always materialized, so this is bookkeeping for API
// symmetry with distributed substrates; Unpersist releases the mark.
func (d *Dataset) Cache() *Dataset {
	d.pinned = true
	return d
}

// Unpersist releases a Cache mark.
func (d *Dataset) Unpersist() { d.pinned = false }

// Cached reports whether Cache has been called without a matching Unpersist.
func (d *Dataset) Cached() bool { return d.pinned }
