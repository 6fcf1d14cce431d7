package world

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBIntersects(t *testing.T) {
	a := BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := BoxAround(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})
	if !a.Intersects(b) {
		t.Fatalf("overlapping boxes should intersect")
	}
	c := BoxAround(mgl64.Vec3{0, 3.5, 0}, mgl64.Vec3{1, 1, 1})
	if a.Intersects(c) {
		t.Fatalf("separated boxes should not intersect")
	}
	// Touching faces count as overlap on that axis.
	d := BoxAround(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{1, 1, 1})
	if !a.Intersects(d) {
		t.Fatalf("touching boxes should intersect")
	}
}

func TestCheckCollisionProximityGate(t *testing.T) {
	// An obstacle with huge bounds but far along the travel axis must be
	// skipped by the proximity window, not caught by the box test.
	far := Obstacle{
		Kind:     KindBuilding,
		Position: mgl64.Vec3{0, 0, 500},
		Bounds:   BoxAround(mgl64.Vec3{0, 0, 500}, mgl64.Vec3{1000, 1000, 1000}),
	}
	plane := BoxAround(mgl64.Vec3{0, 5, 10}, mgl64.Vec3{1, 1, 1})
	if hit := CheckCollision(plane, []Obstacle{far}, 10); hit != nil {
		t.Fatalf("obstacle beyond proximity window must be skipped")
	}
}

func TestCheckCollisionFirstHit(t *testing.T) {
	a := place(KindTree, 0, 100)
	b := place(KindTree, 0, 100.5)
	plane := BoxAround(mgl64.Vec3{0, 2, 100}, mgl64.Vec3{1, 2, 1})
	hit := CheckCollision(plane, []Obstacle{a, b}, 100)
	if hit == nil {
		t.Fatalf("expected a collision")
	}
	if hit.Position != a.Position {
		t.Fatalf("expected first obstacle in iteration order, got %v", hit.Position)
	}
}

func TestCheckCollisionMiss(t *testing.T) {
	obs := place(KindCactus, 10, 100)
	plane := BoxAround(mgl64.Vec3{-10, 2, 100}, mgl64.Vec3{1, 1, 1})
	if hit := CheckCollision(plane, []Obstacle{obs}, 100); hit != nil {
		t.Fatalf("laterally clear plane should not collide")
	}
}

func TestGenerateStaysInZoneAndCorridor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, zn := range Zones {
		obs := Generate(zn, rng)
		if len(obs) == 0 {
			t.Fatalf("zone %s generated no obstacles", zn.ID)
		}
		l := layouts[zn.ID]
		for _, o := range obs {
			if o.Position.Z() < zn.Start || o.Position.Z() >= zn.End {
				t.Fatalf("zone %s obstacle at z=%v outside [%v,%v)", zn.ID, o.Position.Z(), zn.Start, zn.End)
			}
			if o.Kind != KindBuilding && (o.Position.X() > l.corridorHalf || o.Position.X() < -l.corridorHalf) {
				t.Fatalf("zone %s %s at x=%v outside corridor %v", zn.ID, o.Kind, o.Position.X(), l.corridorHalf)
			}
		}
	}
}

func TestGenerateCountScalesWithLength(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	desert := len(Generate(Zones[2], rng))
	forest := len(Generate(Zones[3], rng))
	// Forest is both longer-spanned per unit and denser than desert.
	if forest <= desert {
		t.Fatalf("forest (%d) should be denser than desert (%d)", forest, desert)
	}
}

func TestGenerateZoneKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	allowed := map[string]map[ObstacleKind]bool{
		"runway": {KindPerson: true, KindVehicle: true},
		"city":   {KindPerson: true, KindVehicle: true, KindBuilding: true},
		"desert": {KindCactus: true, KindRock: true},
		"forest": {KindTree: true, KindElk: true},
	}
	for _, zn := range Zones {
		for _, o := range Generate(zn, rng) {
			if !allowed[zn.ID][o.Kind] {
				t.Fatalf("zone %s produced unexpected kind %s", zn.ID, o.Kind)
			}
		}
	}
}

func TestZoneAt(t *testing.T) {
	if z, ok := ZoneAt(50); !ok || z.ID != "runway" {
		t.Fatalf("expected runway at 50, got %v", z.ID)
	}
	if z, ok := ZoneAt(100); !ok || z.ID != "city" {
		t.Fatalf("zone start is inclusive, expected city at 100, got %v", z.ID)
	}
	if _, ok := ZoneAt(VictoryDistance); ok {
		t.Fatalf("victory threshold is past the last zone")
	}
}
