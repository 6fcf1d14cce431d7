package sim

import "time"

// TickInterval drives the cooperative loop; dt is still measured from the
// wall clock so a stalled ticker does not distort the physics.
const TickInterval = 16 * time.Millisecond

// Gameplay constants.
const (
	MinPullDistance = 0.5  // release below this resets instead of launching
	MaxPullDistance = 10.0 // pull units
	DragScaleFactor = 40.0 // screen px of drag per pull unit

	MinLaunchPower        = 20.0 // units/s
	LaunchPowerMultiplier = 8.0  // launch speed per pull unit

	AngleDeadZone  = 8.0   // px of horizontal drag ignored on near-vertical pulls
	AngleBiasScale = 0.002 // angle param change per px beyond the dead zone
	MinAngleParam  = 0.1
	MaxAngleParam  = 0.9

	Gravity = 12.0 // units/s^2

	BaseControl     = 4.0 // lateral accel without wings, units/s^2
	RollRate        = 1.8 // rad/s bank toward the turn direction
	RollLevelRate   = 2.4 // rad/s self-level with wings and no input
	MaxRoll         = 0.6 // rad, visual bank clamp
	MaxPitch        = 0.9 // rad, pitch-control clamp
	PitchVisualRate = 1.2 // rad/s visual pitch follow on up/down input
	PitchDownFactor = 0.5 // down-accel fraction of up-accel, biases climbing

	LiftSpeedThreshold = 8.0  // forward speed below which wings give no lift
	LiftPerSpeed       = 0.12 // lift accel per (lift stat * forward speed)

	BaseDragCoeff = 0.004 // quadratic speed decay, reduced by the aero upgrade

	CorridorHalfWidth = 30.0 // lateral position clamp

	PlaneHalfWidth  = 1.1
	PlaneHalfHeight = 0.4
	PlaneHalfLength = 1.4

	TumbleSeedMax    = 2.0  // rad/s random tumble at launch
	WingTumbleFactor = 0.15 // launch tumble scale with wings owned
	TumbleDecay      = 1.5  // 1/s angular velocity decay with wings
	TumblePitchShare = 0.3  // tumble fraction reaching pitch with wings

	HardLandingSpeed   = 1.0  // |vy| above this bounces instead of settling
	BounceDamping      = 0.45 // vertical velocity kept per bounce
	NoWheelsFriction   = 1.6  // 1/s forward decay sliding without wheels
	TumbleSlowdown     = 2.4  // 1/s forward decay on a wheel-less slam
	CrashTumbleInject  = 3.0  // rad/s extra random tumble on a wheel-less slam
	StopSpeedThreshold = 0.5  // below this at ground level the run ends
	RestAltitudeSlack  = 0.05

	BoosterUpFraction = 0.25 // vertical share of the boost impulse
	BoosterDuration   = 1.5  // s, re-trigger is blocked while this runs

	VictoryBonusCoins = 5000

	MaxTickStep = 0.1 // s, dt clamp against frame hitches
)
