package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gtgrass/pkg/grass"
	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// Script is a replayable list of brush strokes over a flat ground.
type Script struct {
	Ground   Ground               `yaml:"ground"`
	Height   float32              `yaml:"height"` // ray start above the ground
	Camera   *picking.OrbitCamera `yaml:"camera"`
	Viewport Viewport             `yaml:"viewport"`
	Strokes  []Stroke             `yaml:"strokes"`
}

// Viewport is the screen size in pixels screen-space strokes refer to.
// Screen positions are given in logical points and scaled by PixelRatio.
type Viewport struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	PixelRatio float32 `yaml:"pixel_ratio"`
}

// Ground is the horizontal collider strokes land on.
type Ground struct {
	Y          float32 `yaml:"y"`
	HalfExtent float32 `yaml:"half_extent"`
	Layer      int     `yaml:"layer"`
}

// dragSensitivity is radians of camera rotation per dragged point.
const dragSensitivity = 0.01

// Stroke is one brush application, or a line of them when To is set.
type Stroke struct {
	Mode    string       `yaml:"mode"`
	At      Point        `yaml:"at"`
	Screen  *ScreenPoint `yaml:"screen"`
	Orbit   *Drag        `yaml:"orbit"` // camera drag applied before the stroke
	To      *Point       `yaml:"to"`
	Steps   int          `yaml:"steps"`
	Brush   float32      `yaml:"brush"`
	Density int          `yaml:"density"`
	Color   *grass.Color `yaml:"color"`
}

// Point is a ground position.
type Point struct {
	X float32 `yaml:"x"`
	Z float32 `yaml:"z"`
}

// ScreenPoint is a position in logical points seen through the script camera.
type ScreenPoint struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Drag is a mouse drag in logical points.
type Drag struct {
	DX float32 `yaml:"dx"`
	DY float32 `yaml:"dy"`
}

// StrokeStats counts applied strokes per mode.
type StrokeStats map[grass.Mode]int

// Total returns the number of strokes applied.
func (s StrokeStats) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// LoadScript reads a stroke script from path.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(raw)
}

// ParseScript decodes a stroke script and fills in defaults.
func ParseScript(raw []byte) (*Script, error) {
	s := &Script{
		Ground: Ground{HalfExtent: 100},
		Height: 50,
	}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, st := range s.Strokes {
		if _, err := grass.ParseMode(st.Mode); err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		if (st.Screen != nil || st.Orbit != nil) && s.Camera == nil {
			return nil, fmt.Errorf("stroke %d: screen position or orbit without a camera", i)
		}
	}
	if s.Camera != nil {
		s.Camera = withCameraDefaults(s.Camera)
		if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
			s.Viewport.Width, s.Viewport.Height = 1280, 720
		}
		if s.Viewport.PixelRatio <= 0 {
			s.Viewport.PixelRatio = 1
		}
	}
	return s, nil
}

// withCameraDefaults fills the lens settings a script left out.
func withCameraDefaults(c *picking.OrbitCamera) *picking.OrbitCamera {
	d := picking.NewOrbitCamera(c.Center, c.Distance)
	if c.Pitch != 0 {
		d.Pitch = c.Pitch
	}
	d.Yaw = c.Yaw
	if c.FovY > 0 {
		d.FovY = c.FovY
	}
	if c.Near > 0 {
		d.Near = c.Near
	}
	if c.Far > 0 {
		d.Far = c.Far
	}
	return d
}

// World builds the collision world the strokes are cast against.
func (s *Script) World() *picking.World {
	w := picking.NewWorld()
	w.AddGround("ground", s.Ground.Layer, s.Ground.Y, s.Ground.HalfExtent)
	return w
}

// Run applies every stroke to p. Per-stroke overrides are reverted
// afterwards.
func (s *Script) Run(p *grass.Painter) (stats StrokeStats, err error) {
	stats = make(StrokeStats)
	base := p.Settings()
	defer func() {
		if rerr := p.SetSettings(base); rerr != nil && err == nil {
			err = fmt.Errorf("restoring brush settings: %w", rerr)
		}
	}()

	for i, st := range s.Strokes {
		mode, _ := grass.ParseMode(st.Mode)

		set := base
		if st.Brush > 0 {
			set.BrushSize = st.Brush
		}
		if st.Density > 0 {
			set.Density = st.Density
		}
		if st.Color != nil {
			set.Color = *st.Color
		}
		if err := p.SetSettings(set); err != nil {
			return stats, fmt.Errorf("stroke %d: %w", i, err)
		}

		if st.Orbit != nil {
			s.Camera.HandleDrag(st.Orbit.DX, st.Orbit.DY, dragSensitivity)
		}
		if st.Screen != nil {
			x, y := picking.ScaleForHiDPI(st.Screen.X, st.Screen.Y, s.Viewport.PixelRatio)
			p.Stroke(mode, s.Camera.Ray(x, y, s.Viewport.Width, s.Viewport.Height))
			stats[mode]++
			continue
		}
		for _, pt := range st.points() {
			p.Stroke(mode, s.ray(pt))
			stats[mode]++
		}
	}
	return stats, nil
}

func (s *Script) ray(pt Point) picking.Ray {
	return picking.Ray{
		Origin:    math.Vec3{X: pt.X, Y: s.Ground.Y + s.Height, Z: pt.Z},
		Direction: math.Vec3{X: 0, Y: -1, Z: 0},
	}
}

func (st Stroke) points() []Point {
	if st.To == nil {
		return []Point{st.At}
	}
	steps := st.Steps
	if steps < 1 {
		steps = 1
	}
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		out = append(out, Point{
			X: st.At.X + (st.To.X-st.At.X)*t,
			Z: st.At.Z + (st.To.Z-st.At.Z)*t,
		})
	}
	return out
}
