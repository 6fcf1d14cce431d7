package models

import "github.com/go-gl/mathgl/mgl64"

// UpgradeTier is one purchasable step of an upgrade. Cost is the coin price to
// reach this tier from the previous one. Effects maps effect name to magnitude;
// an absent key means no effect.
type UpgradeTier struct {
	Cost    int                `yaml:"cost" json:"cost"`
	Effects map[string]float64 `yaml:"effects" json:"effects"`
}

// UpgradeDefinition is an immutable catalog entry for one upgrade kind.
type UpgradeDefinition struct {
	Key         string        `yaml:"key" json:"key"`
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	MaxTier     int           `yaml:"max_tier" json:"max_tier"`
	Tiers       []UpgradeTier `yaml:"tiers" json:"tiers"`
	Requires    string        `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// PlayerProgress is the persisted save blob.
type PlayerProgress struct {
	Coins           int             `json:"coins"`
	HighestDistance float64         `json:"highestDistance"`
	Upgrades        map[string]int  `json:"upgrades"`
	Checkpoints     map[string]bool `json:"checkpoints"`
}

type FlightMode string

const (
	ModeReady   FlightMode = "ready"
	ModePulling FlightMode = "pulling"
	ModeFlying  FlightMode = "flying"
	ModeCrashed FlightMode = "crashed"
)

// FlightState is the live simulation snapshot exposed to the presentation
// layer. Position axes: X lateral, Y altitude, Z travel axis.
type FlightState struct {
	Mode            FlightMode `json:"mode"`
	Position        mgl64.Vec3 `json:"position"`
	Velocity        mgl64.Vec3 `json:"velocity"`
	AngularVelocity mgl64.Vec3 `json:"angularVelocity"`
	Pitch           float64    `json:"pitch"`
	Roll            float64    `json:"roll"`
	Yaw             float64    `json:"yaw"`
	PullDistance    float64    `json:"pullDistance"`
	LaunchAngle     float64    `json:"launchAngleParam"` // normalized 0..1
	StartingOffset  float64    `json:"startingOffset"`
	BoosterCharges  int        `json:"boosterChargesRemaining"`
	BoosterTime     float64    `json:"boosterEffectTimeRemaining"`
	Distance        float64    `json:"distance"`
	HighestZ        float64    `json:"highestZ"`
	Victory         bool       `json:"victory"`
}

type EventType string

const (
	EventCrash              EventType = "crash"
	EventVictory            EventType = "victory"
	EventCheckpointUnlocked EventType = "checkpoint_unlocked"
	EventUpgradePurchased   EventType = "upgrade_purchased"
)

// Event is a discrete notification pushed to the presentation layer.
type Event struct {
	Type     EventType `json:"type"`
	Zone     string    `json:"zone,omitempty"`
	Key      string    `json:"key,omitempty"`
	Tier     int       `json:"tier,omitempty"`
	Distance float64   `json:"distance,omitempty"`
	Coins    int       `json:"coins,omitempty"`
}
