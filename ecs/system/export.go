package system

import (
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/ecs/component"
	"github.com/milk9111/randpoly/geometry"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// Clipboard receives exported polygon text.
type Clipboard interface {
	WriteText(data []byte) error
}

// PolygonExport is the YAML document copied for a polygon.
type PolygonExport struct {
	Index  int              `yaml:"index"`
	Params geometry.Params  `yaml:"params"`
	Points []geometry.Point `yaml:"points"`
}

// ExportSystem copies the most recently spawned polygon to the clipboard when
// the copy key is pressed. It must run after SpawnSystem in the same tick.
type ExportSystem struct {
	clipboard Clipboard
	last      ecs.Entity
}

func NewExportSystem(cb Clipboard) *ExportSystem {
	return &ExportSystem{clipboard: cb}
}

func (x *ExportSystem) Update(w *ecs.World) {
	if x == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Kind == ecs.EventPolygonSpawned {
			x.last = evt.Entity
		}
	}

	in, ok := currentInput(w)
	if !ok || !in.Copy {
		return
	}
	data, err := x.Export(w)
	if err != nil {
		log.Printf("ExportSystem: %v", err)
		return
	}
	if x.clipboard == nil {
		log.Printf("ExportSystem: no clipboard, dropping %d bytes", len(data))
		return
	}
	if err := x.clipboard.WriteText(data); err != nil {
		log.Printf("ExportSystem: write clipboard: %v", err)
	}
}

// Export renders the last spawned polygon, if it is still alive, as YAML.
func (x *ExportSystem) Export(w *ecs.World) ([]byte, error) {
	if !w.IsAlive(x.last) {
		return nil, fmt.Errorf("export: no live spawned polygon")
	}
	poly, ok := ecs.Get(w, x.last, component.PolygonComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("export: entity %v has no polygon", x.last)
	}
	doc := PolygonExport{Points: poly.Points}
	if spawn, ok := ecs.Get(w, x.last, component.SpawnedComponent.Kind()); ok {
		doc.Index = spawn.Index
		doc.Params = spawn.Params
	}
	return yaml.Marshal(doc)
}

type systemClipboard struct{}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// SystemClipboard returns the OS clipboard, or an error when it cannot be
// initialised (for example without a display).
func SystemClipboard() (Clipboard, error) {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return nil, fmt.Errorf("clipboard: %w", clipboardErr)
	}
	return systemClipboard{}, nil
}

func (systemClipboard) WriteText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
