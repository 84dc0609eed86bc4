package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/randpoly/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testParams = geometry.Params{Verts: 12, MeanRadius: 40, RadiusStd: 6, PhaseStd: 0.02}

func TestGenerateBatchIndependentOfWorkers(t *testing.T) {
	one, err := generateBatch(context.Background(), 42, 20, 1, testParams)
	require.NoError(t, err)
	many, err := generateBatch(context.Background(), 42, 20, 8, testParams)
	require.NoError(t, err)

	require.Len(t, one.Polygons, 20)
	assert.Equal(t, one, many)
	for i, poly := range one.Polygons {
		assert.Equal(t, i, poly.Index)
		assert.Len(t, poly.Points, testParams.Verts-1)
	}
	assert.NotEqual(t, one.Polygons[0].Points, one.Polygons[1].Points)
}

func TestGenerateBatchInvalidParams(t *testing.T) {
	_, err := generateBatch(context.Background(), 1, 4, 2, geometry.Params{Verts: 1, MeanRadius: 10})
	require.ErrorIs(t, err, geometry.ErrInvalidParameter)

	_, err = generateBatch(context.Background(), 1, -1, 2, testParams)
	require.Error(t, err)
}

func TestGenerateBatchEmpty(t *testing.T) {
	batch, err := generateBatch(context.Background(), 1, 0, 0, testParams)
	require.NoError(t, err)
	assert.Empty(t, batch.Polygons)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	batch, err := generateBatch(context.Background(), 7, 3, 2, testParams)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, write(&buf, "yaml", batch))

	var got Batch
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, batch.Seed, got.Seed)
	require.Len(t, got.Polygons, 3)
	assert.Equal(t, testParams, got.Polygons[2].Params)
	assert.Len(t, got.Polygons[2].Points, testParams.Verts-1)
}

func TestWriteSVG(t *testing.T) {
	batch, err := generateBatch(context.Background(), 7, 5, 2, testParams)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, write(&buf, "svg", batch))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"?>`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 5, strings.Count(out, "<path "))
	assert.Equal(t, 5, strings.Count(out, "<text "))
	assert.Equal(t, 5*(testParams.Verts-2), strings.Count(out, "\n  L"))
}

func TestWriteFile(t *testing.T) {
	batch, err := generateBatch(context.Background(), 7, 2, 1, testParams)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, writeFile(path, "yaml", batch))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Batch
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Len(t, got.Polygons, 2)

	require.Error(t, writeFile(filepath.Join(t.TempDir(), "missing", "out.yaml"), "yaml", batch))
	require.Error(t, writeFile(filepath.Join(t.TempDir(), "out.png"), "png", batch))
}

func TestWriteUnknownFormat(t *testing.T) {
	require.Error(t, write(&bytes.Buffer{}, "png", &Batch{}))
}

func TestPolygonBoundsIncludesOrigin(t *testing.T) {
	b := polygonBounds([]geometry.Point{{X: 5, Y: 5}, {X: 10, Y: 8}})
	assert.Equal(t, 0.0, b.Min.X)
	assert.Equal(t, 0.0, b.Min.Y)
	assert.Equal(t, 10.0, b.Width())
	assert.Equal(t, 8.0, b.Height())
}
