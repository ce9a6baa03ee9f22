// Package grass implements the grass painting engine: it samples collision
// surfaces under a brush, grows a single dynamic mesh of grass cells, removes
// and edits blades in place, and keeps the flat vertex/triangle buffers and
// the cell ownership graph consistent through every edit.
package grass

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// Mode selects what a brush stroke does.
type Mode int

// Brush modes.
const (
	ModeAdd Mode = iota
	ModeRemove
	ModeEdit
)

// String returns the mode name used in logs and the CLI.
func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeRemove:
		return "remove"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "add", "paint":
		return ModeAdd, nil
	case "remove", "erase":
		return ModeRemove, nil
	case "edit":
		return ModeEdit, nil
	}
	return 0, fmt.Errorf("unknown brush mode %q", s)
}

// Color is a linear RGBA color.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// Array returns the components as an array.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// ColorRange is the per-channel random color spread.
type ColorRange struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// Placement limits.
const (
	cellSize      = 7 // center plus six hexagon points
	MinDensity    = 1
	MaxDensity    = 7
	MinGrassLimit = cellSize
	MaxGrassLimit = 10000
)

// Settings holds every live-tunable brush parameter.
type Settings struct {
	BrushSize   float32           `yaml:"brush_size"`
	Density     int               `yaml:"density"`
	GrassLimit  int               `yaml:"grass_limit"`
	NormalLimit float32           `yaml:"normal_limit"`
	Roughness   float32           `yaml:"roughness"`
	Width       float32           `yaml:"width"`
	Length      float32           `yaml:"length"`
	Color       Color             `yaml:"color"`
	ColorRange  ColorRange        `yaml:"color_range"`
	HitMask     picking.LayerMask `yaml:"hit_mask"`
	PaintMask   picking.LayerMask `yaml:"paint_mask"`
	RayDistance float32           `yaml:"ray_distance"`
	Origin      math.Vec3         `yaml:"origin"` // painter transform position
}

// DefaultSettings returns the brush defaults.
func DefaultSettings() Settings {
	return Settings{
		BrushSize:   1,
		Density:     1,
		GrassLimit:  5000,
		NormalLimit: 1,
		Roughness:   0.5,
		Width:       0.02,
		Length:      1,
		Color:       Color{R: 0, G: 1, B: 0, A: 1},
		HitMask:     picking.LayerBit(0),
		PaintMask:   picking.LayerBit(0),
		RayDistance: 400,
	}
}

// Settings validation errors.
var (
	ErrInvalidBrush   = errors.New("brush size must be positive")
	ErrInvalidDensity = errors.New("density out of range")
	ErrInvalidLimit   = errors.New("grass limit out of range")
	ErrInvalidTilt    = errors.New("normal limit must be within [0, 1]")
)

// Validate checks that the settings are usable by a Painter.
func (s Settings) Validate() error {
	if s.BrushSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBrush, s.BrushSize)
	}
	if s.Density < MinDensity || s.Density > MaxDensity {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidDensity, s.Density, MinDensity, MaxDensity)
	}
	if s.GrassLimit < MinGrassLimit || s.GrassLimit > MaxGrassLimit {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidLimit, s.GrassLimit, MinGrassLimit, MaxGrassLimit)
	}
	if s.NormalLimit < 0 || s.NormalLimit > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidTilt, s.NormalLimit)
	}
	if s.Roughness < 0 {
		return fmt.Errorf("roughness must not be negative: %v", s.Roughness)
	}
	if s.RayDistance <= 0 {
		return fmt.Errorf("ray distance must be positive: %v", s.RayDistance)
	}
	return nil
}
