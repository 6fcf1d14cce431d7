package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/danmarai/slingshot-flyer/internal/models"
	"github.com/danmarai/slingshot-flyer/internal/world"
)

var planeHalf = mgl64.Vec3{PlaneHalfWidth, PlaneHalfHeight, PlaneHalfLength}

// integrateLocked advances one flying tick. The step order matters for game
// feel and is fixed: control, gravity, lift, drag, then translation, then
// orientation and ground handling, then the terminal checks. A collision or
// the victory/stop checks end the tick immediately.
func (e *Engine) integrateLocked(dt float64) {
	st := &e.state
	in := &e.input
	stats := &e.stats

	if st.BoosterTime > 0 {
		st.BoosterTime = math.Max(0, st.BoosterTime-dt)
	}

	// 1. Lateral control plus a bounded visual bank.
	steer := 0.0
	if in.left {
		steer -= 1
	}
	if in.right {
		steer += 1
	}
	if steer != 0 {
		accel := BaseControl
		if stats.hasWings {
			accel += stats.wingControl
		}
		st.Velocity[0] += steer * accel * dt
		st.Roll = clamp(st.Roll+steer*RollRate*dt, -MaxRoll, MaxRoll)
	} else if stats.hasWings {
		st.Roll = decayToward(st.Roll, RollLevelRate*dt)
	}

	// 2. Pitch control needs both wings and tail. Down-accel is halved so the
	// controls bias toward climbing.
	if stats.hasWings && stats.hasTail {
		if in.up {
			st.Velocity[1] += stats.pitchAccel * dt
			st.Pitch = clamp(st.Pitch+PitchVisualRate*dt, -MaxPitch, MaxPitch)
		}
		if in.down {
			st.Velocity[1] -= stats.pitchAccel * PitchDownFactor * dt
			st.Pitch = clamp(st.Pitch-PitchVisualRate*dt, -MaxPitch, MaxPitch)
		}
	}

	// 3. Gravity.
	st.Velocity[1] -= Gravity * dt

	// 4. Lift: wings only, and only above the minimum forward speed. Scaling
	// with forward speed gives a soft ceiling since drag caps speed.
	if fwd := st.Velocity.Z(); stats.hasWings && fwd > LiftSpeedThreshold {
		st.Velocity[1] += LiftPerSpeed * stats.lift * fwd * dt
	}

	// 5. Quadratic drag as a speed-magnitude decay, never reversing.
	if speed := st.Velocity.Len(); speed > 0 {
		factor := 1 - stats.dragCoeff*speed*dt
		if factor < 0 {
			factor = 0
		}
		st.Velocity = st.Velocity.Mul(factor)
	}

	// 6. Translate.
	st.Position = st.Position.Add(st.Velocity.Mul(dt))

	// 7. Keep the plane inside the travel corridor.
	st.Position[0] = clamp(st.Position[0], -CorridorHalfWidth, CorridorHalfWidth)

	// 8. Tumble. Wings stabilize: angular velocity decays and only a fraction
	// reaches pitch, roll self-levels in step 1. Without wings the tumble
	// integrates straight into the visual orientation.
	if stats.hasWings {
		decay := 1 - TumbleDecay*dt
		if decay < 0 {
			decay = 0
		}
		st.AngularVelocity = st.AngularVelocity.Mul(decay)
		st.Pitch += st.AngularVelocity.X() * TumblePitchShare * dt
	} else {
		st.Pitch += st.AngularVelocity.X() * dt
		st.Yaw += st.AngularVelocity.Y() * dt
		st.Roll += st.AngularVelocity.Z() * dt
	}

	// 9. Ground contact.
	if st.Position.Y() <= PlaneHalfHeight {
		st.Position[1] = PlaneHalfHeight
		e.groundContactLocked(dt)
	}

	// 10. Distance bookkeeping. Scoring uses run distance; HighestZ only
	// feeds the camera/zone display.
	st.Distance = math.Max(0, st.Position.Z()-st.StartingOffset)
	if st.Position.Z() > st.HighestZ {
		st.HighestZ = st.Position.Z()
	}

	// 11. Checkpoint unlocks persist immediately.
	for _, zn := range world.Zones[1:] {
		if st.Position.Z() >= zn.Start && e.store.UnlockCheckpoint(zn.ID) {
			e.emitLocked(models.Event{Type: models.EventCheckpointUnlocked, Zone: zn.ID})
		}
	}

	// 12. Obstacle collision ends the tick.
	bounds := world.BoxAround(st.Position, planeHalf)
	if hit := world.CheckCollision(bounds, e.obstacles, st.Position.Z()); hit != nil {
		e.settleLocked(false)
		return
	}

	// 13. Victory.
	if st.Position.Z() >= world.VictoryDistance {
		e.settleLocked(true)
		return
	}

	// 14. Full stop on the ground.
	if st.Velocity.Len() < StopSpeedThreshold && st.Position.Y() <= PlaneHalfHeight+RestAltitudeSlack {
		e.settleLocked(false)
	}
}

// groundContactLocked resolves a touch-down: soft contacts roll out, hard
// ones bounce. Wheels make both cases clean; without them the plane scrubs
// speed and tumbles.
func (e *Engine) groundContactLocked(dt float64) {
	st := &e.state
	stats := &e.stats
	vy := st.Velocity.Y()
	if vy >= 0 {
		return
	}
	if -vy <= HardLandingSpeed {
		st.Velocity[1] = 0
		friction := NoWheelsFriction
		if stats.hasWheels {
			friction = stats.wheelFriction
		}
		st.Velocity[2] *= frictionFactor(friction, dt)
		return
	}
	// Hard landing: reflect and damp.
	st.Velocity[1] = -vy * BounceDamping
	if stats.hasWheels {
		st.Velocity[2] *= frictionFactor(stats.wheelFriction, dt)
		st.AngularVelocity = mgl64.Vec3{}
		st.Pitch = 0
		st.Roll = 0
		return
	}
	st.Velocity[2] *= frictionFactor(TumbleSlowdown, dt)
	st.AngularVelocity = st.AngularVelocity.Add(mgl64.Vec3{
		(e.rng.Float64()*2 - 1) * CrashTumbleInject,
		(e.rng.Float64()*2 - 1) * CrashTumbleInject,
		(e.rng.Float64()*2 - 1) * CrashTumbleInject,
	})
}

func frictionFactor(perSecond, dt float64) float64 {
	f := 1 - perSecond*dt
	if f < 0 {
		return 0
	}
	return f
}

// decayToward moves v toward zero by at most step.
func decayToward(v, step float64) float64 {
	switch {
	case v > step:
		return v - step
	case v < -step:
		return v + step
	default:
		return 0
	}
}
