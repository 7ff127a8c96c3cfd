package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
)

// Policy identifies which branch of target acquisition picked a plant.
type Policy uint8

const (
	PolicyNearest Policy = iota // greedy scan for the closest plant
	PolicyRandom                // uniform pick
)

func (p Policy) String() string {
	if p == PolicyNearest {
		return "nearest"
	}
	return "random"
}

// Choice is the result of one acquisition.
type Choice struct {
	Point   r3.Vec
	PlantID uint32
	Policy  Policy
	Removed int // stale plants dropped during the nearest scan
}

// AcquireTarget picks a plant for a creature at pos.
//
// With probability pClosest it scans every live plant for the nearest one.
// During that scan, plants within epsSq of the creature's previous target are
// treated as already eaten and removed from the field. Otherwise it picks a
// live plant uniformly with the creature's own stream.
//
// Returns false when the field has no plant to offer.
func AcquireTarget(field *ResourceField, pos r3.Vec, prev components.Target, rng *rand.Rand, pClosest, epsSq float64) (Choice, bool) {
	if field.Count() == 0 {
		return Choice{}, false
	}

	if rng.Float64() < pClosest {
		return nearestPlant(field, pos, prev, epsSq)
	}

	plants := field.All()
	r := plants[rng.Intn(len(plants))]
	return Choice{Point: r.Pos, PlantID: r.ID, Policy: PolicyRandom}, true
}

func nearestPlant(field *ResourceField, pos r3.Vec, prev components.Target, epsSq float64) (Choice, bool) {
	c := Choice{Policy: PolicyNearest}
	best := math.Inf(1)
	found := false

	var stale []uint32
	for _, r := range field.All() {
		if prev.Valid && distSq(r.Pos, prev.Point) < epsSq {
			stale = append(stale, r.ID)
			continue
		}
		if d := distSq(r.Pos, pos); d < best {
			best = d
			c.Point = r.Pos
			c.PlantID = r.ID
			found = true
		}
	}

	for _, id := range stale {
		if field.Remove(id) {
			c.Removed++
		}
	}
	return c, found
}
