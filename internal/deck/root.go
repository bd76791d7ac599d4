package deck

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/schedule"
)

// Root is a directory whose sub-directories are decks.
type Root struct {
	fs    afero.Fs
	dir   string
	clock schedule.Clock
}

func NewRoot(fs afero.Fs, dir string, clock schedule.Clock) *Root {
	return &Root{fs: fs, dir: dir, clock: clock}
}

func (r *Root) Dir() string { return r.dir }

// Decks returns deck names, newest name first. Hidden directories such as
// .git are not decks.
func (r *Root) Decks() ([]string, error) {
	infos, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		return nil, fmt.Errorf("list decks in %s: %w", r.dir, err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			names = append(names, info.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Create makes a new, empty deck.
func (r *Root) Create(name string) (*Deck, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(r.dir, name)
	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("check deck %s: %w", name, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeckExists, name)
	}
	if err := r.fs.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create deck %s: %w", name, err)
	}
	return r.deck(name), nil
}

// Open returns an existing deck.
func (r *Root) Open(name string) (*Deck, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	ok, err := afero.DirExists(r.fs, filepath.Join(r.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open deck %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, name)
	}
	return r.deck(name), nil
}

func (r *Root) deck(name string) *Deck {
	return New(name, NewFSStore(r.fs, filepath.Join(r.dir, name)), r.clock)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDeckName, name)
	}
	return nil
}
