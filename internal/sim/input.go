package sim

import "math"

// Direction names accepted from the presentation layer.
const (
	DirLeft  = "left"
	DirRight = "right"
	DirUp    = "up"
	DirDown  = "down"
)

// inputState buffers raw input between ticks: held-key flags plus the current
// drag gesture. Events land here asynchronously and the simulation samples it
// once per tick, so event timing never changes the outcome within a tick.
type inputState struct {
	dragging       bool
	startX, startY float64
	curX, curY     float64

	left, right, up, down bool
}

func (in *inputState) setKey(direction string, held bool) {
	switch direction {
	case DirLeft:
		in.left = held
	case DirRight:
		in.right = held
	case DirUp:
		in.up = held
	case DirDown:
		in.down = held
	}
}

// pull maps the buffered drag gesture to (pullDistance, launchAngleParam).
// The angle starts neutral at 0.5 and is biased only by the horizontal drag
// component beyond a small dead zone, so near-vertical pulls do not jitter.
func (in *inputState) pull() (float64, float64) {
	dx := in.curX - in.startX
	dy := in.curY - in.startY
	raw := math.Hypot(dx, dy)
	pull := clamp(raw/DragScaleFactor, 0, MaxPullDistance)

	bias := 0.0
	switch {
	case dx > AngleDeadZone:
		bias = dx - AngleDeadZone
	case dx < -AngleDeadZone:
		bias = dx + AngleDeadZone
	}
	param := clamp(0.5+bias*AngleBiasScale, MinAngleParam, MaxAngleParam)
	return pull, param
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
