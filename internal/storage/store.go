package storage

import (
	"errors"
	"fmt"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key identifies a stored benchmark artifact.
type Key struct {
	Algorithm string `json:"algorithm"`
	Dataset   string `json:"dataset"`
}

// Path is the file name a key maps to.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s.json", k.Algorithm, k.Dataset)
}

// Persistence stores and loads benchmark artifacts.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage ignores all writes, used when no output dir is configured.
type VoidStorage struct {
}

func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (v VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (v VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("no storage configured for '%v': %w", k, NotFoundErr)
}
