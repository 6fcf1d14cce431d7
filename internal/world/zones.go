// Package world defines the linear play field: the four zones along the
// travel axis, the obstacles scattered through them, and the box overlap test
// the simulation uses to detect crashes.
package world

// Zone is a span of the travel axis. Start is inclusive, End exclusive.
type Zone struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// VictoryDistance is the absolute travel-axis position that ends a run as a
// victory.
const VictoryDistance = 6000

// Zones in travel order. The runway checkpoint is always available; the
// others unlock when a flight first crosses their start.
var Zones = []Zone{
	{ID: "runway", Start: 0, End: 100},
	{ID: "city", Start: 100, End: 1000},
	{ID: "desert", Start: 1000, End: 3000},
	{ID: "forest", Start: 3000, End: VictoryDistance},
}

// ZoneByID returns the zone with the given identifier.
func ZoneByID(id string) (Zone, bool) {
	for _, z := range Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// ZoneAt returns the zone covering an absolute travel-axis position.
func ZoneAt(z float64) (Zone, bool) {
	for _, zn := range Zones {
		if z >= zn.Start && z < zn.End {
			return zn, true
		}
	}
	return Zone{}, false
}
