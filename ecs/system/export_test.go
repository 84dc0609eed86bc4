package system

import (
	"errors"
	"testing"

	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/ecs"
	"github.com/milk9111/randpoly/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeClipboard struct {
	data [][]byte
	err  error
}

func (f *fakeClipboard) WriteText(data []byte) error {
	f.data = append(f.data, data)
	return f.err
}

func TestExportCopiesLastSpawned(t *testing.T) {
	scene := loadScene(t, prefabs.DefaultScene)
	spawn, err := NewSpawnSystem(scene, common.NewSource(3))
	require.NoError(t, err)
	cb := &fakeClipboard{}
	export := NewExportSystem(cb)

	w := ecs.NewWorld()
	_, err = spawn.Spawn(w, 0, 0)
	require.NoError(t, err)
	last, err := spawn.Spawn(w, 0, 0)
	require.NoError(t, err)

	export.Update(w)
	assert.Empty(t, cb.data, "nothing copied without the copy key")

	ensureInput(w).Copy = true
	export.Update(w)
	require.Len(t, cb.data, 1)

	var doc PolygonExport
	require.NoError(t, yaml.Unmarshal(cb.data[0], &doc))
	assert.Equal(t, len(scene.Polygons)+1, doc.Index)
	assert.Equal(t, scene.Generator.Params(), doc.Params)
	assert.Len(t, doc.Points, scene.Generator.Verts-1)

	w.DestroyEntity(last)
	_, err = export.Export(w)
	assert.Error(t, err)
}

func TestExportClipboardErrorIsLogged(t *testing.T) {
	scene := loadScene(t, prefabs.DefaultScene)
	spawn, err := NewSpawnSystem(scene, common.NewSource(3))
	require.NoError(t, err)
	cb := &fakeClipboard{err: errors.New("no display")}
	export := NewExportSystem(cb)

	w := ecs.NewWorld()
	_, err = spawn.Spawn(w, 0, 0)
	require.NoError(t, err)
	ensureInput(w).Copy = true

	assert.NotPanics(t, func() { export.Update(w) })
	assert.Len(t, cb.data, 1)
}

func TestExportWithoutClipboard(t *testing.T) {
	w := ecs.NewWorld()
	ensureInput(w).Copy = true
	assert.NotPanics(t, func() { NewExportSystem(nil).Update(w) })
}
