package main

import (
	"context"
	"fmt"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/geometry"
	"golang.org/x/sync/errgroup"
)

// Polygon is one generated outline and the settings that produced it.
type Polygon struct {
	Index  int              `yaml:"index"`
	Seed   uint64           `yaml:"seed"`
	Params geometry.Params  `yaml:"params"`
	Points []geometry.Point `yaml:"points"`
}

// Batch is the YAML document written by polygen.
type Batch struct {
	Seed     uint64    `yaml:"seed"`
	Polygons []Polygon `yaml:"polygons"`
}

// generateBatch builds n polygons on at most workers goroutines. Polygon i
// always draws from the same derived source, so output does not depend on
// worker count or scheduling.
func generateBatch(ctx context.Context, seed uint64, n, workers int, params geometry.Params) (*Batch, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("polygen: negative count %d", n)
	}
	if workers <= 0 {
		workers = 1
	}

	batch := &Batch{Seed: seed, Polygons: make([]Polygon, n)}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points, err := geometry.Generate(common.SubSource(seed, i), params)
			if err != nil {
				return fmt.Errorf("polygon %d: %w", i, err)
			}
			batch.Polygons[i] = Polygon{Index: i, Seed: seed, Params: params, Points: points}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}
