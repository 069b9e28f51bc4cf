package prompt

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed template
var templateFS embed.FS

// Store reads prompt fragments from a stack of file systems. The first layer
// holding a fragment wins; the embedded templates are always the last layer.
// A fragment that cannot be read is returned as "".
type Store struct {
	layers []fs.FS
}

// NewStore builds a Store over the given override layers plus the embedded templates.
func NewStore(overrides ...fs.FS) *Store {
	layers := make([]fs.FS, 0, len(overrides)+1)
	for _, l := range overrides {
		if l != nil {
			layers = append(layers, l)
		}
	}
	layers = append(layers, Embedded())
	return &Store{layers: layers}
}

// NewStoreFromDir layers dir (when set) over the embedded templates.
func NewStoreFromDir(dir string) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return NewStore()
	}
	return NewStore(os.DirFS(dir))
}

// Embedded returns the built-in template tree.
func Embedded() fs.FS {
	sub, err := fs.Sub(templateFS, "template")
	if err != nil {
		panic(err)
	}
	return sub
}

// Read joins parts into a fragment path and returns its content.
func (s *Store) Read(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	for _, p := range parts {
		if p == "" || !fs.ValidPath(p) {
			return ""
		}
	}
	name := path.Join(parts...)
	if !fs.ValidPath(name) {
		return ""
	}

	for _, layer := range s.layers {
		raw, err := fs.ReadFile(layer, name)
		if err == nil {
			return string(raw)
		}
	}
	log.Debug().Str("fragment", name).Msg("prompt fragment not found")
	return ""
}
