// Command polygen writes batches of random polygons as YAML or SVG.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/geometry"
	"gopkg.in/yaml.v3"
)

func main() {
	n := flag.Int("n", 16, "number of polygons")
	verts := flag.Int("verts", 30, "vertex count passed to the generator (yields verts-1 points)")
	radius := flag.Float64("radius", 60, "mean radius")
	radiusStd := flag.Float64("radius-std", 9, "radius standard deviation")
	phaseStd := flag.Float64("phase-std", 0.01, "phase standard deviation, in turns")
	seed := flag.String("seed", "1", "base seed (number or any string)")
	format := flag.String("format", "yaml", "output format: yaml or svg")
	out := flag.String("o", "", "output file (default stdout)")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "maximum concurrent generators")
	flag.Parse()

	params := geometry.Params{Verts: *verts, MeanRadius: *radius, RadiusStd: *radiusStd, PhaseStd: *phaseStd}
	batch, err := generateBatch(context.Background(), common.ParseSeed(*seed), *n, *workers, params)
	if err != nil {
		log.Fatalf("polygen: %v", err)
	}

	if *out == "" {
		err = writeTo(os.Stdout, *format, batch)
	} else {
		err = writeFile(*out, *format, batch)
	}
	if err != nil {
		log.Fatalf("polygen: %v", err)
	}
}

// writeFile writes batch to path. A failed flush or close is reported, since
// either can mean the file on disk is incomplete.
func writeFile(path, format string, batch *Batch) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return writeTo(f, format, batch)
}

func writeTo(w io.Writer, format string, batch *Batch) error {
	bw := bufio.NewWriter(w)
	if err := write(bw, format, batch); err != nil {
		return err
	}
	return bw.Flush()
}

func write(w io.Writer, format string, batch *Batch) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(batch); err != nil {
			return err
		}
		return enc.Close()
	case "svg":
		return writeSVG(w, batch)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
