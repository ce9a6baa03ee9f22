package assetstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gtgrass/internal/logger"
	"github.com/Faultbox/gtgrass/pkg/grass"
)

// FileStore keeps assets as files below a root directory. Meshes are
// binary glTF, records are YAML.
type FileStore struct {
	root string
	log  *zap.Logger
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir, log: logger.Named("assetstore")}
}

// Root returns the store directory.
func (s *FileStore) Root() string {
	return s.root
}

// Path returns the file path backing key.
func (s *FileStore) Path(key string) (string, error) {
	clean, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Exists reports whether an asset is stored under key.
func (s *FileStore) Exists(key string) bool {
	p, err := s.Path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Delete removes the asset under key.
func (s *FileStore) Delete(key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return err
	}
	s.log.Debug("asset deleted", zap.String("key", key))
	return nil
}

// CreateMesh writes mesh as a binary glTF file.
func (s *FileStore) CreateMesh(key string, mesh *grass.Buffers) error {
	p, err := s.prepare(key)
	if err != nil {
		return err
	}
	doc := encodeMesh(path.Base(key), mesh)
	if err := gltf.SaveBinary(doc, p); err != nil {
		return fmt.Errorf("writing mesh %s: %w", key, err)
	}
	s.log.Debug("mesh written", zap.String("key", key), zap.Int("vertices", mesh.VertexCount()))
	return nil
}

// LoadMesh reads a mesh written by CreateMesh.
func (s *FileStore) LoadMesh(key string) (*grass.Buffers, error) {
	p, err := s.existing(key)
	if err != nil {
		return nil, err
	}
	doc, err := gltf.Open(p)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", key, err)
	}
	mesh, err := decodeMesh(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding mesh %s: %w", key, err)
	}
	return mesh, nil
}

// CreateData writes the record as YAML. The mesh is not included.
func (s *FileStore) CreateData(key string, data *grass.GrassData) error {
	p, err := s.prepare(key)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", key, err)
	}
	if err := os.WriteFile(p, out, 0644); err != nil {
		return err
	}
	s.log.Debug("record written", zap.String("key", key), zap.Int("cells", len(data.Cells)))
	return nil
}

// LoadData reads a record. The returned record has no mesh attached.
func (s *FileStore) LoadData(key string) (*grass.GrassData, error) {
	p, err := s.existing(key)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	data := &grass.GrassData{}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) prepare(key string) (string, error) {
	p, err := s.Path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", err
	}
	return p, nil
}

func (s *FileStore) existing(key string) (string, error) {
	p, err := s.Path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", err
	}
	return p, nil
}
