// Package catalog holds the static upgrade definitions: six upgrade kinds,
// each with a fixed tier ladder of costs and effect magnitudes. The catalog is
// read-only after load; the simulation looks effects up by key and treats an
// absent key as "no effect".
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danmarai/slingshot-flyer/internal/models"
)

// ErrOutOfRange reports a tier lookup outside 1..MaxTier. This indicates a bug
// in the caller; UI gating should make it unreachable.
var ErrOutOfRange = errors.New("upgrade tier out of range")

// Upgrade keys.
const (
	Wings       = "wings"
	Wheels      = "wheels"
	Tail        = "tail"
	Aerodynamic = "aerodynamic"
	Slingshot   = "slingshot"
	Boosters    = "boosters"
)

// Effect names used by the simulation.
const (
	EffectLift          = "lift"
	EffectControl       = "control"
	EffectFriction      = "friction"
	EffectPitch         = "pitch"
	EffectDragReduction = "dragReduction"
	EffectPower         = "power"
	EffectUses          = "uses"
	EffectBoost         = "boost"
)

var knownEffects = map[string]bool{
	EffectLift:          true,
	EffectControl:       true,
	EffectFriction:      true,
	EffectPitch:         true,
	EffectDragReduction: true,
	EffectPower:         true,
	EffectUses:          true,
	EffectBoost:         true,
}

type Catalog struct {
	defs  []models.UpgradeDefinition
	byKey map[string]models.UpgradeDefinition
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultDefinitions())
	if err != nil {
		// The built-in data is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

// LoadFile reads upgrade definitions from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []models.UpgradeDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse upgrade catalog: %w", err)
	}
	return New(defs)
}

// New validates the definitions and builds the lookup table. Validation
// enforces the catalog invariants: tier count matches MaxTier, costs strictly
// increase, effect names are known to the simulation, and Requires references
// an existing upgrade.
func New(defs []models.UpgradeDefinition) (*Catalog, error) {
	byKey := make(map[string]models.UpgradeDefinition, len(defs))
	for _, d := range defs {
		if d.Key == "" {
			return nil, fmt.Errorf("upgrade with empty key")
		}
		if _, dup := byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate upgrade %q", d.Key)
		}
		if d.MaxTier < 1 {
			return nil, fmt.Errorf("upgrade %q: max_tier must be >= 1", d.Key)
		}
		if len(d.Tiers) != d.MaxTier {
			return nil, fmt.Errorf("upgrade %q: %d tiers, max_tier %d", d.Key, len(d.Tiers), d.MaxTier)
		}
		prev := 0
		for i, t := range d.Tiers {
			if t.Cost <= prev {
				return nil, fmt.Errorf("upgrade %q: tier %d cost %d not increasing", d.Key, i+1, t.Cost)
			}
			prev = t.Cost
			for name := range t.Effects {
				if !knownEffects[name] {
					return nil, fmt.Errorf("upgrade %q: tier %d has unknown effect %q", d.Key, i+1, name)
				}
			}
		}
		byKey[d.Key] = d
	}
	for _, d := range defs {
		if d.Requires == "" {
			continue
		}
		if _, ok := byKey[d.Requires]; !ok {
			return nil, fmt.Errorf("upgrade %q requires unknown upgrade %q", d.Key, d.Requires)
		}
	}
	return &Catalog{defs: defs, byKey: byKey}, nil
}

// Definitions returns all upgrade definitions in catalog order.
func (c *Catalog) Definitions() []models.UpgradeDefinition {
	return c.defs
}

// Definition returns a single definition by key.
func (c *Catalog) Definition(key string) (models.UpgradeDefinition, bool) {
	d, ok := c.byKey[key]
	return d, ok
}

// TierEffects returns the effect mapping for a 1-based tier level.
func (c *Catalog) TierEffects(key string, level int) (map[string]float64, error) {
	d, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("unknown upgrade %q", key)
	}
	if level < 1 || level > d.MaxTier {
		return nil, fmt.Errorf("%w: %s tier %d", ErrOutOfRange, key, level)
	}
	return d.Tiers[level-1].Effects, nil
}

// EffectValue returns one effect magnitude at the given owned level. Level 0,
// an unknown key, or an absent effect name all read as 0 (no effect).
func (c *Catalog) EffectValue(key string, level int, effect string) float64 {
	d, ok := c.byKey[key]
	if !ok || level < 1 {
		return 0
	}
	if level > d.MaxTier {
		level = d.MaxTier
	}
	return d.Tiers[level-1].Effects[effect]
}

// NextCost returns the coin cost to go from level to level+1. The second
// return is false when the upgrade is already at max tier.
func (c *Catalog) NextCost(key string, level int) (int, bool) {
	d, ok := c.byKey[key]
	if !ok || level < 0 || level >= d.MaxTier {
		return 0, false
	}
	return d.Tiers[level].Cost, true
}

// Purchasable reports whether the upgrade can be raised from level to level+1,
// combining the max-tier check with the prerequisite gate. requiresSatisfied
// is the caller's verdict on the Requires upgrade being at tier >= 1; it is
// ignored for upgrades with no prerequisite.
func (c *Catalog) Purchasable(key string, level int, requiresSatisfied bool) bool {
	d, ok := c.byKey[key]
	if !ok || level < 0 || level >= d.MaxTier {
		return false
	}
	if d.Requires != "" && !requiresSatisfied {
		return false
	}
	return true
}
