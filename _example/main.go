package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/hupe1980/breggo"
	"github.com/hupe1980/breggo/dataset"
	"github.com/hupe1980/breggo/util"
	"github.com/hupe1980/breggo/vector"
)

func blobCenter(dim int, value float64) []float64 {
	center := make([]float64, dim)
	for i := range center {
		center[i] = value
	}
	return center
}

func main() {
	seed := int64(4711)
	dim := 16
	perBlob := 25000
	k := 4

	rng := util.NewRNG(seed)
	var points []vector.Weighted
	for _, c := range []float64{0, 10, 20, 30} {
		points = append(points, rng.GeneratePointsAround(blobCenter(dim, c), perBlob, 0.5)...)
	}

	ds := dataset.FromSlice(points, 0)

	fmt.Println("--- Train ---")
	fmt.Println("Dimension:", dim)
	fmt.Println("Points:", ds.Count())
	fmt.Println("Partitions:", ds.NumPartitions())

	metrics := &breggo.BasicMetricsCollector{}
	trainer, err := breggo.KMeans(k).
		SquaredEuclidean().
		KMeansParallelInit().
		Runs(2).
		Seed(seed).
		Logger(breggo.NewTextLogger(slog.LevelInfo)).
		Metrics(metrics).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	model, err := trainer.Fit(context.Background(), ds)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Seconds: %.2f\n", time.Since(start).Seconds())
	fmt.Println("Centers:", model.K())
	fmt.Printf("Cost: %.4f\n", model.Cost())
	fmt.Println("Iterations:", metrics.IterationCount.Load())
	fmt.Println()

	fmt.Println("--- Predict ---")
	query := rng.GeneratePointsAround(blobCenter(dim, 20), 1, 0.5)[0]

	start = time.Now()
	label, d := model.Predict(query)
	fmt.Printf("Seconds: %.8f\n", time.Since(start).Seconds())
	fmt.Printf("Cluster: %d Distance: %.4f\n", label, d)
	fmt.Println()

	fmt.Println("--- Snapshot ---")
	var buf bytes.Buffer
	if err := breggo.SaveModel(&buf, model, func(o *breggo.SnapshotOptions) {
		o.Compression = breggo.CompressionLZ4
		o.IncludeMembers = true
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Bytes:", buf.Len())

	restored, err := breggo.LoadModel(&buf)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Restored centers:", restored.K())
}
