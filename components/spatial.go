package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a point or direction in world space. Y is up; the stage lies on XZ.
type Vec = r3.Vec

// Up is the world up axis.
var Up = Vec{Y: 1}

// Transform represents an entity's world position and yaw.
type Transform struct {
	Pos    Vec
	Facing float64 // yaw around Up, radians
}

// Forward returns the unit vector the model's visual front points along.
func (t Transform) Forward() Vec {
	return r3.NewRotation(t.Facing, Up).Rotate(Vec{Z: 1})
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	Vec
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return r3.Norm(v.Vec)
}

// FacingFor returns the yaw that makes a model face along dir.
// The look yaw maps -Z onto dir; the model's forward is +Z so a half turn is added.
func FacingFor(dir Vec) float64 {
	look := math.Atan2(-dir.X, -dir.Z)
	return NormalizeAngle(look + math.Pi)
}

// NormalizeAngle wraps angle to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
