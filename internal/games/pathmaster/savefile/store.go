package savefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

// DefaultExtension is the save file extension.
const DefaultExtension = ".game"

// ErrNoSaves is returned by Latest when the directory holds no valid save.
var ErrNoSaves = errors.New("savefile: no saves found")

// Store handles saves in one directory.
type Store struct {
	Dir string
	Ext string
}

// NewStore creates a store rooted at dir. An empty ext means DefaultExtension.
func NewStore(dir, ext string) *Store {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Store{Dir: dir, Ext: ext}
}

// FileName returns the file name a save is written under.
func (s *Store) FileName(save Save) string {
	return save.SavedAt.UTC().Format("20060102-150405") + "-" + save.ID + s.Ext
}

// WriteFile writes the save into the store directory and returns its path.
func (s *Store) WriteFile(save Save) (string, error) {
	data, err := Encode(save)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("savefile: create dir %s: %w", s.Dir, err)
	}

	path := filepath.Join(s.Dir, s.FileName(save))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("savefile: write %s: %w", path, err)
	}
	return path, nil
}

// Put validates encoded save data and writes it into the store directory.
// Data that does not decode is rejected without touching the disk.
func (s *Store) Put(data []byte) (string, error) {
	save, err := Decode(data)
	if err != nil {
		return "", err
	}
	return s.WriteFile(save)
}

// List returns every valid save in the directory, newest first.
// Files that fail to decode are skipped. A missing directory is empty.
func (s *Store) List() ([]Save, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("savefile: read dir %s: %w", s.Dir, err)
	}

	var saves []Save
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), s.Ext) {
			continue
		}
		save, err := ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			// Skip invalid files
			continue
		}
		saves = append(saves, save)
	}

	sort.Slice(saves, func(i, j int) bool {
		if !saves[i].SavedAt.Equal(saves[j].SavedAt) {
			return saves[i].SavedAt.After(saves[j].SavedAt)
		}
		return saves[i].Path > saves[j].Path
	})
	return saves, nil
}

// Latest returns the newest valid save.
func (s *Store) Latest() (Save, error) {
	saves, err := s.List()
	if err != nil {
		return Save{}, err
	}
	if len(saves) == 0 {
		return Save{}, ErrNoSaves
	}
	return saves[0], nil
}

// ReadFile reads and decodes one save file. A file that cannot be read is a
// core.PersistenceError of kind core.ErrUnreadable; one that cannot be
// trusted is of kind core.ErrCorrupt.
func ReadFile(path string) (Save, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Save{}, core.PersistenceError{
			Kind: core.ErrUnreadable,
			Err:  fmt.Errorf("reading file %s: %w", path, err),
		}
	}

	save, err := Decode(data)
	if err != nil {
		return Save{}, err
	}
	save.Path = path
	return save, nil
}
