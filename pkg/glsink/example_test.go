package glsink_test

import (
	"github.com/Faultbox/gtgrass/pkg/glsink"
	"github.com/Faultbox/gtgrass/pkg/grass"
	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// A host with a current GL 4.1 context hands the sink to the painter and
// draws it every frame.
func Example() {
	world := picking.NewWorld()
	world.AddGround("ground", 0, 0, 50)

	settings := grass.DefaultSettings()
	painter, err := grass.NewPainter(settings, world)
	if err != nil {
		panic(err)
	}

	sink, err := glsink.New(settings.Origin)
	if err != nil {
		panic(err)
	}
	defer sink.Destroy()
	painter.SetSink(sink)

	cam := picking.NewOrbitCamera(math.Vec3{}, 20)
	painter.Stroke(grass.ModeAdd, cam.Ray(640, 360, 1280, 720))
	sink.Draw(cam.ViewProj(1280.0 / 720.0))
}
