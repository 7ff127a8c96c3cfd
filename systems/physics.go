package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
)

// Integrate moves tr along vel for dt seconds.
func Integrate(tr *components.Transform, vel components.Velocity, dt float64) {
	tr.Pos = r3.Add(tr.Pos, r3.Scale(dt, vel.Vec))
}
