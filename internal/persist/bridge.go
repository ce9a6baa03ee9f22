// Package persist connects a painting session to the asset store: it
// creates, saves, reloads and copies grass records and their meshes.
package persist

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/internal/assetstore"
	"github.com/Faultbox/gtgrass/internal/logger"
	"github.com/Faultbox/gtgrass/pkg/grass"
)

// AssetsPrefix is the namespace every grass folder must live in.
const AssetsPrefix = "Assets/"

// copyTimeLayout formats copy timestamps as dd-MM-yyyy_hh-mm-ss.
const copyTimeLayout = "02-01-2006_03-04-05"

// ErrInvalidFolder is returned when a folder lies outside AssetsPrefix.
var ErrInvalidFolder = errors.New("folder must start with " + AssetsPrefix)

// Hook observes a record around persistence.
type Hook func(data *grass.GrassData)

// Bridge moves state between one Painter and a Store. Like the Painter it
// is not safe for concurrent use.
type Bridge struct {
	store   assetstore.Store
	painter *grass.Painter
	log     *zap.Logger

	key  string // record key of the active data
	data *grass.GrassData

	beforePersist []Hook
	afterLoad     []Hook
}

// NewBridge creates a bridge with no active data.
func NewBridge(store assetstore.Store, painter *grass.Painter) *Bridge {
	return &Bridge{
		store:   store,
		painter: painter,
		log:     logger.Named("persist"),
	}
}

// OnBeforePersist registers fn to run before every Save and SaveCopy.
func (b *Bridge) OnBeforePersist(fn Hook) {
	b.beforePersist = append(b.beforePersist, fn)
}

// OnAfterLoad registers fn to run after every successful Load.
func (b *Bridge) OnAfterLoad(fn Hook) {
	b.afterLoad = append(b.afterLoad, fn)
}

// IsInitialized reports whether a record is active.
func (b *Bridge) IsInitialized() bool {
	return b.data != nil
}

// Key returns the record key of the active data.
func (b *Bridge) Key() string {
	return b.key
}

// Data returns a copy of the active record header and cells as last saved.
func (b *Bridge) Data() *grass.GrassData {
	if b.data == nil {
		return nil
	}
	return b.data.Clone()
}

// RecordKey returns the key Initialize uses for name in folder.
func RecordKey(name, folder string) (string, error) {
	if !strings.HasPrefix(folder, AssetsPrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	return folder + name + "/" + name + ".yaml", nil
}

// MeshKey returns the mesh key paired with a record key.
func MeshKey(recordKey, name string) string {
	return path.Join(path.Dir(recordKey), name+"mesh.glb")
}

// Initialize creates a new record named name below folder, writes the
// current session into it and makes it active.
func (b *Bridge) Initialize(name, folder string) error {
	key, err := RecordKey(name, folder)
	if err != nil {
		b.log.Error("cannot create grass data", zap.String("folder", folder), zap.Error(err))
		return err
	}
	if _, err := assetstore.CleanKey(key); err != nil {
		return err
	}

	data := grass.NewGrassData(name)
	data.MeshKey = MeshKey(key, name)

	snap := b.painter.Snapshot()
	if err := b.store.CreateMesh(data.MeshKey, snap.Mesh); err != nil {
		return fmt.Errorf("creating mesh: %w", err)
	}
	data.Cells = snap.Cells
	if err := b.store.CreateData(key, data); err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	data.Mesh = nil
	b.key, b.data = key, data
	b.log.Info("grass data created",
		zap.String("key", key),
		zap.Stringer("id", data.ID),
		zap.Int("cells", len(data.Cells)))
	return nil
}

// Open loads the record stored under key and restores it into the session.
func (b *Bridge) Open(key string) error {
	data, err := b.store.LoadData(key)
	if err != nil {
		return fmt.Errorf("opening %s: %w", key, err)
	}
	prevKey, prevData := b.key, b.data
	b.key, b.data = key, data
	if err := b.Load(); err != nil {
		b.key, b.data = prevKey, prevData
		return err
	}
	return nil
}

// Save writes the live session into the active record and its mesh.
func (b *Bridge) Save() error {
	if b.data == nil {
		b.log.Error("save failed", zap.Error(grass.ErrNotInitialized))
		return grass.ErrNotInitialized
	}
	if b.painter.CellCount() == 0 {
		b.log.Warn("nothing to save, reload to restore the stored grass", zap.String("key", b.key))
		return grass.ErrNoCells
	}

	snap := b.painter.Snapshot()
	data := b.data.Clone()
	data.Cells = snap.Cells
	data.Mesh = snap.Mesh
	if data.MeshKey == "" {
		data.MeshKey = MeshKey(b.key, data.Name)
	}
	for _, fn := range b.beforePersist {
		fn(data)
	}

	if err := b.store.CreateMesh(data.MeshKey, data.Mesh); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	if err := b.store.CreateData(b.key, data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	data.Mesh = nil
	b.data = data
	b.log.Info("grass data saved",
		zap.String("key", b.key),
		zap.Int("cells", len(data.Cells)),
		zap.Int("vertices", snap.Mesh.VertexCount()))
	return nil
}

// Load replaces the live session with the stored record and mesh.
func (b *Bridge) Load() error {
	if b.data == nil {
		b.log.Error("load failed", zap.Error(grass.ErrNotInitialized))
		return grass.ErrNotInitialized
	}

	data, err := b.store.LoadData(b.key)
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}
	if data.MeshKey == "" || !b.store.Exists(data.MeshKey) {
		b.log.Error("load failed", zap.String("key", b.key), zap.Error(grass.ErrMissingGeometry))
		return fmt.Errorf("%w: %s", grass.ErrMissingGeometry, b.key)
	}
	data.Mesh, err = b.store.LoadMesh(data.MeshKey)
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}

	if err := b.painter.Restore(data); err != nil {
		return err
	}

	for _, fn := range b.afterLoad {
		fn(data)
	}
	data.Mesh = nil
	b.data = data
	return nil
}

// SaveCopy writes the live session to a new timestamped record and mesh
// next to the active record. The active record is left untouched.
func (b *Bridge) SaveCopy(now time.Time) (recordKey, meshKey string, err error) {
	if b.data == nil {
		b.log.Error("save copy failed", zap.Error(grass.ErrNotInitialized))
		return "", "", grass.ErrNotInitialized
	}

	stamp := now.Format(copyTimeLayout)
	dir := path.Dir(b.key)
	name := b.data.Name
	recordKey = path.Join(dir, fmt.Sprintf("%s-Copy-%s.yaml", name, stamp))
	meshKey = path.Join(dir, fmt.Sprintf("%s-Mesh-Copy-%s.glb", name, stamp))

	snap := b.painter.Snapshot()
	data := grass.NewGrassData(name)
	data.MeshKey = meshKey
	data.Cells = snap.Cells
	data.Mesh = snap.Mesh
	for _, fn := range b.beforePersist {
		fn(data)
	}

	if err := b.store.CreateMesh(meshKey, data.Mesh); err != nil {
		return "", "", fmt.Errorf("writing mesh copy: %w", err)
	}
	if err := b.store.CreateData(recordKey, data); err != nil {
		return "", "", fmt.Errorf("writing record copy: %w", err)
	}
	b.log.Info("grass data copied", zap.String("from", b.key), zap.String("to", recordKey))
	return recordKey, meshKey, nil
}
