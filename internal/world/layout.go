package world

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ObstacleKind enumerates the collidable set pieces.
type ObstacleKind string

const (
	KindPerson   ObstacleKind = "person"
	KindVehicle  ObstacleKind = "vehicle"
	KindBuilding ObstacleKind = "building"
	KindCactus   ObstacleKind = "cactus"
	KindRock     ObstacleKind = "rock"
	KindTree     ObstacleKind = "tree"
	KindElk      ObstacleKind = "elk"
)

// Obstacle is a static collidable placed during layout generation.
type Obstacle struct {
	Kind     ObstacleKind `json:"kind"`
	Position mgl64.Vec3   `json:"position"`
	Bounds   AABB         `json:"bounds"`
}

// Half extents per kind, X/Y/Z.
var kindHalf = map[ObstacleKind]mgl64.Vec3{
	KindPerson:   {0.4, 0.9, 0.4},
	KindVehicle:  {1.0, 0.9, 2.0},
	KindBuilding: {6.0, 12.0, 6.0},
	KindCactus:   {0.6, 1.5, 0.6},
	KindRock:     {2.5, 1.8, 2.5},
	KindTree:     {1.2, 4.0, 1.2},
	KindElk:      {0.9, 1.1, 1.6},
}

type weightedKind struct {
	kind   ObstacleKind
	weight int
}

// zoneLayout tunes placement per zone: how wide the usable corridor is, how
// far apart obstacles land along the travel axis, and what spawns there.
// Corridors stay wide relative to obstacle footprints so clear paths exist by
// density rather than by construction.
type zoneLayout struct {
	corridorHalf  float64
	spacingMin    float64
	spacingMax    float64
	startMargin   float64
	kinds         []weightedKind
	edgeBuildings bool // city blocks lining both corridor edges
}

var layouts = map[string]zoneLayout{
	"runway": {
		corridorHalf: 12,
		spacingMin:   25,
		spacingMax:   45,
		startMargin:  20, // keep the launch area clear
		kinds: []weightedKind{
			{KindPerson, 3},
			{KindVehicle, 2},
		},
	},
	"city": {
		corridorHalf:  18,
		spacingMin:    12,
		spacingMax:    24,
		edgeBuildings: true,
		kinds: []weightedKind{
			{KindVehicle, 3},
			{KindPerson, 2},
		},
	},
	"desert": {
		corridorHalf: 25,
		spacingMin:   35,
		spacingMax:   70,
		kinds: []weightedKind{
			{KindCactus, 4},
			{KindRock, 1},
		},
	},
	"forest": {
		corridorHalf: 25,
		spacingMin:   10,
		spacingMax:   20,
		kinds: []weightedKind{
			{KindTree, 9},
			{KindElk, 1},
		},
	},
}

func pickKind(rng *rand.Rand, kinds []weightedKind) ObstacleKind {
	total := 0
	for _, k := range kinds {
		total += k.weight
	}
	n := rng.Intn(total)
	for _, k := range kinds {
		n -= k.weight
		if n < 0 {
			return k.kind
		}
	}
	return kinds[len(kinds)-1].kind
}

func place(kind ObstacleKind, x, z float64) Obstacle {
	half := kindHalf[kind]
	pos := mgl64.Vec3{x, half.Y(), z}
	return Obstacle{Kind: kind, Position: pos, Bounds: BoxAround(pos, half)}
}

// Generate lays out the obstacle set for one zone. Placement is random within
// the zone's spacing band and corridor; obstacle count therefore scales with
// zone length. There is no seeded determinism requirement — callers that need
// reproducibility pass a seeded rng.
func Generate(zone Zone, rng *rand.Rand) []Obstacle {
	l, ok := layouts[zone.ID]
	if !ok {
		return nil
	}
	var out []Obstacle
	z := zone.Start + l.startMargin + l.spacingMin
	for z < zone.End {
		kind := pickKind(rng, l.kinds)
		half := kindHalf[kind]
		span := l.corridorHalf - half.X()
		if span < 0 {
			span = 0
		}
		x := (rng.Float64()*2 - 1) * span
		out = append(out, place(kind, x, z))

		if l.edgeBuildings {
			// Buildings line both street edges, outside the flyable corridor.
			bh := kindHalf[KindBuilding]
			edge := l.corridorHalf + bh.X() + 2
			if rng.Float64() < 0.8 {
				out = append(out, place(KindBuilding, edge, z))
			}
			if rng.Float64() < 0.8 {
				out = append(out, place(KindBuilding, -edge, z))
			}
		}

		z += l.spacingMin + rng.Float64()*(l.spacingMax-l.spacingMin)
	}
	return out
}

// GenerateAll builds the full collidable set across every zone, in travel
// order.
func GenerateAll(rng *rand.Rand) []Obstacle {
	var out []Obstacle
	for _, zn := range Zones {
		out = append(out, Generate(zn, rng)...)
	}
	return out
}
