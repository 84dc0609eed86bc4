package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Source resolves prefab names against an override directory on disk, then a
// fallback filesystem. Edits under Dir show up without a rebuild.
type Source struct {
	Dir string
	FS  fs.FS
}

// Default reads prefabs/ relative to the working directory, then the copies
// compiled into the binary.
var Default = Source{Dir: "prefabs", FS: PrefabsFS}

func (s Source) Read(name string) ([]byte, error) {
	clean, err := cleanPrefabPath(name)
	if err != nil {
		return nil, err
	}
	if s.Dir != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(clean)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if s.FS == nil {
		return nil, &fs.PathError{Op: "open", Path: clean, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(s.FS, clean)
}

// Load reads a prefab from the Default source.
func Load(name string) ([]byte, error) {
	return Default.Read(name)
}

// LoadScript reads a spawn script; bare names resolve under scripts/.
func LoadScript(name string) ([]byte, error) {
	clean, err := cleanPrefabPath(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(clean, "scripts/") {
		clean = "scripts/" + clean
	}
	return Default.Read(clean)
}

// cleanPrefabPath turns name into a slash-separated path relative to the
// prefab root. A leading "prefabs/" is dropped.
func cleanPrefabPath(name string) (string, error) {
	s := path.Clean(filepath.ToSlash(name))
	s = strings.TrimPrefix(s, "prefabs/")
	if s == "." || s == "" || !fs.ValidPath(s) {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return s, nil
}
