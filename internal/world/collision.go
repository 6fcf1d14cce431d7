package world

import "github.com/go-gl/mathgl/mgl64"

// ProximityWindow is how far along the travel axis an obstacle may sit from
// the plane and still be considered for the overlap test. Obstacles are laid
// out sparsely along a single axis, so a flat distance gate does the job of a
// spatial index here.
const ProximityWindow = 50.0

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min mgl64.Vec3 `json:"min"`
	Max mgl64.Vec3 `json:"max"`
}

// BoxAround builds a box centered on pos with the given half extents.
func BoxAround(pos, half mgl64.Vec3) AABB {
	return AABB{Min: pos.Sub(half), Max: pos.Add(half)}
}

// Intersects reports whether two boxes overlap on all three axes.
func (a AABB) Intersects(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < b.Min[i] || b.Max[i] < a.Min[i] {
			return false
		}
	}
	return true
}

// CheckCollision returns the first obstacle whose bounds overlap planeBounds,
// or nil. Obstacles outside the proximity window around planeZ are skipped
// without testing, and the first hit ends the search.
func CheckCollision(planeBounds AABB, obstacles []Obstacle, planeZ float64) *Obstacle {
	for i := range obstacles {
		o := &obstacles[i]
		dz := o.Position.Z() - planeZ
		if dz > ProximityWindow || dz < -ProximityWindow {
			continue
		}
		if planeBounds.Intersects(o.Bounds) {
			return o
		}
	}
	return nil
}
