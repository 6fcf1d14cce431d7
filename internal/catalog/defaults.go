package catalog

import "github.com/danmarai/slingshot-flyer/internal/models"

// defaultDefinitions is the built-in upgrade ladder. Effect magnitudes are in
// the simulation's working units (accelerations in units/s^2, multipliers
// dimensionless).
func defaultDefinitions() []models.UpgradeDefinition {
	return []models.UpgradeDefinition{
		{
			Key:         Wings,
			Name:        "Wings",
			Description: "Stabilize the plane and generate lift at speed.",
			MaxTier:     3,
			Tiers: []models.UpgradeTier{
				{Cost: 150, Effects: map[string]float64{EffectLift: 0.8, EffectControl: 6}},
				{Cost: 400, Effects: map[string]float64{EffectLift: 1.2, EffectControl: 9}},
				{Cost: 900, Effects: map[string]float64{EffectLift: 1.6, EffectControl: 12}},
			},
		},
		{
			Key:         Wheels,
			Name:        "Landing Gear",
			Description: "Roll instead of tumble on touchdown.",
			MaxTier:     2,
			Tiers: []models.UpgradeTier{
				{Cost: 100, Effects: map[string]float64{EffectFriction: 0.35}},
				{Cost: 300, Effects: map[string]float64{EffectFriction: 0.2}},
			},
		},
		{
			Key:         Tail,
			Name:        "Tail Fin",
			Description: "Pitch control in flight. Needs wings.",
			MaxTier:     2,
			Requires:    Wings,
			Tiers: []models.UpgradeTier{
				{Cost: 250, Effects: map[string]float64{EffectPitch: 10}},
				{Cost: 600, Effects: map[string]float64{EffectPitch: 16}},
			},
		},
		{
			Key:         Aerodynamic,
			Name:        "Aerodynamic Shell",
			Description: "Slice through the air with less drag.",
			MaxTier:     3,
			Tiers: []models.UpgradeTier{
				{Cost: 200, Effects: map[string]float64{EffectDragReduction: 0.15}},
				{Cost: 500, Effects: map[string]float64{EffectDragReduction: 0.3}},
				{Cost: 1000, Effects: map[string]float64{EffectDragReduction: 0.45}},
			},
		},
		{
			Key:         Slingshot,
			Name:        "Slingshot Bands",
			Description: "Stronger rubber, harder launch.",
			MaxTier:     3,
			Tiers: []models.UpgradeTier{
				{Cost: 120, Effects: map[string]float64{EffectPower: 1.2}},
				{Cost: 350, Effects: map[string]float64{EffectPower: 1.45}},
				{Cost: 800, Effects: map[string]float64{EffectPower: 1.7}},
			},
		},
		{
			Key:         Boosters,
			Name:        "Rocket Boosters",
			Description: "Mid-air thrust, limited charges per run.",
			MaxTier:     3,
			Tiers: []models.UpgradeTier{
				{Cost: 300, Effects: map[string]float64{EffectUses: 1, EffectBoost: 25}},
				{Cost: 700, Effects: map[string]float64{EffectUses: 2, EffectBoost: 32}},
				{Cost: 1500, Effects: map[string]float64{EffectUses: 3, EffectBoost: 40}},
			},
		},
	}
}
