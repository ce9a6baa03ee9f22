package grass

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Persistence errors.
var (
	ErrNotInitialized       = errors.New("grass data not initialized")
	ErrMissingGeometry      = errors.New("grass data has no geometry")
	ErrInconsistentGeometry = errors.New("grass geometry is inconsistent")
	ErrNoCells              = errors.New("grass data has no cells")
)

// GrassData is the persisted form of a painting session: the geometry plus
// the cell list that indexes it.
type GrassData struct {
	ID      uuid.UUID `yaml:"id"`
	Name    string    `yaml:"name"`
	MeshKey string    `yaml:"mesh"`
	Cells   []*Cell   `yaml:"cells"`

	// Mesh is stored separately under MeshKey.
	Mesh *Buffers `yaml:"-"`
}

// NewGrassData returns an empty record with a fresh identity.
func NewGrassData(name string) *GrassData {
	return &GrassData{ID: uuid.New(), Name: name, Mesh: &Buffers{}}
}

// Clone returns a deep copy.
func (d *GrassData) Clone() *GrassData {
	out := &GrassData{ID: d.ID, Name: d.Name, MeshKey: d.MeshKey, Cells: cloneCells(d.Cells)}
	if d.Mesh != nil {
		out.Mesh = d.Mesh.Clone()
	}
	return out
}

// Snapshot returns a deep copy of the live geometry and cells. Later strokes
// do not affect it.
func (p *Painter) Snapshot() *GrassData {
	return &GrassData{
		Mesh:  p.buf.Clone(),
		Cells: cloneCells(p.cells),
	}
}

// Restore replaces the live session with a deep copy of data.
func (p *Painter) Restore(data *GrassData) error {
	if data == nil {
		return ErrNotInitialized
	}
	if data.Mesh == nil {
		p.log.Error("restore failed", zap.Error(ErrMissingGeometry), zap.String("name", data.Name))
		return ErrMissingGeometry
	}
	if err := checkGraph(data.Mesh, data.Cells); err != nil {
		p.log.Error("restore failed", zap.Error(err), zap.String("name", data.Name))
		return fmt.Errorf("%w: %v", ErrInconsistentGeometry, err)
	}

	p.buf = *data.Mesh.Clone()
	p.cells = cloneCells(data.Cells)
	p.hasPlaced = false
	p.flush()
	p.log.Info("grass data restored",
		zap.String("name", data.Name),
		zap.Int("cells", len(p.cells)),
		zap.Int("vertices", p.buf.VertexCount()))
	return nil
}
