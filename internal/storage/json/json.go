package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtneves/ICCS-2021/internal/storage"
)

// Storage persists benchmark artifacts as json files in one directory.
type Storage struct {
	dir string
}

// NewStorage creates the storage, making the directory if needed.
func NewStorage(dir string) (*Storage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("could not make dir: %s: %w", dir, err)
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path given is not a dir: %s", dir)
	}
	return &Storage{dir: dir}, nil
}

// Store writes the value for the given key.
func (s *Storage) Store(k storage.Key, value interface{}) error {
	p := filepath.Join(s.dir, k.Path())
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal key '%+v': %w", k, err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load reads the value for the given key.
func (s *Storage) Load(k storage.Key, value interface{}) error {
	p := filepath.Join(s.dir, k.Path())
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal key '%+v': %w", k, storage.CouldNotLoadErr)
	}
	return nil
}
