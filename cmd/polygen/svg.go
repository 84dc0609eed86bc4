package main

import (
	"fmt"
	"io"
	"math"

	"github.com/jbeda/geom"
	"github.com/milk9111/randpoly/geometry"
)

const cellPadding = 10.0

type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) start(viewBox geom.Rect) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (s *svgWriter) end() {
	s.printf("</svg>\n")
}

func (s *svgWriter) polyline(points []geom.Coord, closed bool, style string) {
	if len(points) == 0 {
		return
	}
	s.printf("<path style='%s' d='M%f,%f", style, points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.printf("\n  L%f,%f", p.X, p.Y)
	}
	if closed {
		s.printf(" Z")
	}
	s.printf("'/>\n")
}

func (s *svgWriter) label(at geom.Coord, text string) {
	s.printf("<text x='%f' y='%f' font-size='10' text-anchor='middle' fill='gray'>%s</text>\n", at.X, at.Y, text)
}

func toCoord(p geometry.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

// polygonBounds returns the box around the polygon and the origin, so a
// polygon with every vertex on one side still sits inside its cell.
func polygonBounds(points []geometry.Point) geom.Rect {
	r := geom.Rect{Min: geom.Coord{}, Max: geom.Coord{}}
	for _, p := range points {
		r.ExpandToContainCoord(toCoord(p))
	}
	return r
}

// writeSVG lays polygons out on a square grid, one per cell, each centred on
// its own origin.
func writeSVG(w io.Writer, batch *Batch) error {
	cell := 0.0
	for _, poly := range batch.Polygons {
		b := polygonBounds(poly.Points)
		half := math.Max(
			math.Max(math.Abs(b.Min.X), math.Abs(b.Max.X)),
			math.Max(math.Abs(b.Min.Y), math.Abs(b.Max.Y)),
		)
		cell = math.Max(cell, 2*half)
	}
	cell += 2 * cellPadding

	cols := int(math.Ceil(math.Sqrt(float64(len(batch.Polygons)))))
	if cols == 0 {
		cols = 1
	}
	rows := (len(batch.Polygons) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}

	view := geom.Rect{
		Min: geom.Coord{},
		Max: geom.Coord{X: float64(cols) * cell, Y: float64(rows) * cell},
	}

	svg := &svgWriter{w: w}
	svg.start(view)
	for i, poly := range batch.Polygons {
		centre := geom.Coord{
			X: (float64(i%cols) + 0.5) * cell,
			Y: (float64(i/cols) + 0.5) * cell,
		}
		coords := make([]geom.Coord, 0, len(poly.Points))
		for _, p := range poly.Points {
			coords = append(coords, centre.Plus(toCoord(p)))
		}
		svg.polyline(coords, true, "fill:none;stroke:black;stroke-width:1")
		svg.label(centre, fmt.Sprintf("%d", poly.Index))
	}
	svg.end()
	return svg.err
}
