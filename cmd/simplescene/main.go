// Command simplescene runs a minimal demo scene: a static ground plane
// and a box dropped from height, stepped for a fixed 200 frames.
package main

import (
	"log/slog"
	"os"

	"github.com/galeengine/gale"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	engine := gale.NewEngine()
	engine.CreatePlane(mgl32.Vec3{0, 1, 0}, 0, 0)
	box := engine.CreateBox(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 1, 1}, 1)

	const dt = 1.0 / 60
	const steps = 200

	for step := 0; step < steps; step++ {
		engine.Update(dt)

		b := engine.GetWorld().Body(box)
		for _, ev := range engine.GetWorld().DrainEvents() {
			log.Info("contact event", "kind", ev.Kind, "a", ev.A, "b", ev.B)
		}

		if step%30 == 0 {
			log.Info("box state",
				"step", step,
				"position", b.Transform.Position,
				"velocity", b.Velocity,
			)
		}
	}

	final := engine.GetWorld().Body(box)
	log.Info("settled", "position", final.Transform.Position, "fps", engine.GetAverageFPS())
}
