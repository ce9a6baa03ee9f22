// Package assetstore persists grass records and their meshes under
// slash-separated keys such as "Assets/Grass/meadow/meadow.yaml".
package assetstore

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Faultbox/gtgrass/pkg/grass"
)

var (
	// ErrNotFound is returned when no asset exists under a key.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("invalid asset key")
	// ErrCorruptMesh is returned when a stored mesh cannot be decoded.
	ErrCorruptMesh = errors.New("corrupt mesh asset")
)

// Store is the host asset store. Create calls overwrite existing assets.
type Store interface {
	Exists(key string) bool
	Delete(key string) error
	CreateMesh(key string, mesh *grass.Buffers) error
	LoadMesh(key string) (*grass.Buffers, error)
	CreateData(key string, data *grass.GrassData) error
	LoadData(key string) (*grass.GrassData, error)
}

// CleanKey normalizes key and rejects keys that leave the store root.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}
