package deck

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is the flat artifact namespace of one deck.
type Store interface {
	// List returns the names of all artifacts in listing order.
	List() ([]string, error)
	// Open opens an artifact for reading.
	Open(name string) (io.ReadCloser, error)
	// WriteFile creates or replaces an artifact.
	WriteFile(name string, data []byte) error
	// Path resolves an artifact name to a location a user can open.
	Path(name string) string
}

const filePerm = 0o644

// FSStore keeps artifacts as files in one directory of an afero filesystem.
type FSStore struct {
	fs  afero.Fs
	dir string
}

var _ Store = (*FSStore)(nil)

// NewFSStore returns a store for the directory dir of fs.
func NewFSStore(fs afero.Fs, dir string) *FSStore {
	return &FSStore{fs: fs, dir: dir}
}

func (s *FSStore) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

func (s *FSStore) Open(name string) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// WriteFile writes to a temporary file next to the artifact and renames it
// into place, so readers never see a half-written artifact.
func (s *FSStore) WriteFile(name string, data []byte) error {
	tmp := filepath.Join(s.dir, "."+name+".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, s.Path(name)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FSStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}
