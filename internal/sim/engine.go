// Package sim is the flight simulation core: the ready/pulling/flying/crashed
// state machine, the per-tick physics integrator, and the upgrade-aware
// control model. The engine owns the live FlightState and the player's
// progress; the presentation layer only ever sees snapshots and events.
package sim

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/danmarai/slingshot-flyer/internal/catalog"
	"github.com/danmarai/slingshot-flyer/internal/models"
	"github.com/danmarai/slingshot-flyer/internal/progress"
	"github.com/danmarai/slingshot-flyer/internal/replay"
	"github.com/danmarai/slingshot-flyer/internal/world"
)

// flightStats is the upgrade-derived control model, resolved from owned tiers
// at reset, launch and purchase so the integrator never touches the catalog.
type flightStats struct {
	hasWings  bool
	hasTail   bool
	hasWheels bool

	wingControl   float64 // extra lateral accel
	lift          float64 // wing lift stat
	pitchAccel    float64 // tail pitch stat
	dragCoeff     float64 // base drag after aero reduction
	wheelFriction float64 // 1/s rolling decay with wheels
	slingshotMult float64 // launch power multiplier
	boosterUses   int
	boosterPower  float64
}

// Engine owns simulation state and logic.
type Engine struct {
	mu    sync.Mutex
	cat   *catalog.Catalog
	store *progress.Store
	rng   *rand.Rand

	state     models.FlightState
	input     inputState
	stats     flightStats
	obstacles []world.Obstacle

	checkpoint string // zone id the next run starts from

	pending []models.Event
	sink    func(models.Event)

	recorder *replay.Recorder
	tick     uint64

	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	ticker  *time.Ticker
}

// NewEngine builds an engine with a freshly generated obstacle layout. The
// store should be loaded before it is handed in.
func NewEngine(cat *catalog.Catalog, store *progress.Store, rng *rand.Rand) *Engine {
	e := &Engine{
		cat:        cat,
		store:      store,
		rng:        rng,
		checkpoint: progress.RunwayCheckpoint,
	}
	e.obstacles = world.GenerateAll(rng)
	e.resetLocked()
	return e
}

// SetEventSink registers the callback invoked for each discrete event. The
// sink runs outside the engine lock.
func (e *Engine) SetEventSink(sink func(models.Event)) {
	e.mu.Lock()
	e.sink = sink
	e.mu.Unlock()
}

// SetRecorder attaches a replay journal. Recording failures detach it.
func (e *Engine) SetRecorder(r *replay.Recorder) {
	e.mu.Lock()
	e.recorder = r
	e.mu.Unlock()
}

// Snapshot returns a read-only copy of the live flight state.
func (e *Engine) Snapshot() models.FlightState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Progress returns the current player progress.
func (e *Engine) Progress() models.PlayerProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Current()
}

// Catalog returns the upgrade catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Obstacles returns the generated collidable set.
func (e *Engine) Obstacles() []world.Obstacle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.obstacles
}

// SetObstacles replaces the collidable set.
func (e *Engine) SetObstacles(obs []world.Obstacle) {
	e.mu.Lock()
	e.obstacles = obs
	e.mu.Unlock()
}

// ==========
// input events (no-ops outside the states that accept them)

// DragStart begins a slingshot pull. Only legal while Ready.
func (e *Engine) DragStart(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode != models.ModeReady {
		return
	}
	e.input.dragging = true
	e.input.startX, e.input.startY = x, y
	e.input.curX, e.input.curY = x, y
	e.state.Mode = models.ModePulling
}

// DragMove updates the buffered drag position while Pulling.
func (e *Engine) DragMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode != models.ModePulling {
		return
	}
	e.input.curX, e.input.curY = x, y
	e.state.PullDistance, e.state.LaunchAngle = e.input.pull()
}

// DragEnd releases the slingshot: launch when the pull reached the minimum,
// otherwise reset back to Ready.
func (e *Engine) DragEnd() {
	e.mu.Lock()
	if e.state.Mode != models.ModePulling {
		e.mu.Unlock()
		return
	}
	e.input.dragging = false
	pull, param := e.input.pull()
	if pull >= MinPullDistance {
		e.state.PullDistance, e.state.LaunchAngle = pull, param
		e.launchLocked()
	} else {
		e.state.Mode = models.ModeReady
		e.state.PullDistance = 0
		e.state.LaunchAngle = 0.5
	}
	e.mu.Unlock()
}

// SetKey records a held/released steering key.
func (e *Engine) SetKey(direction string, held bool) {
	e.mu.Lock()
	e.input.setKey(direction, held)
	e.mu.Unlock()
}

// ActivateBooster fires one booster charge. Requires the upgrade, a remaining
// charge, and no booster effect still running.
func (e *Engine) ActivateBooster() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode != models.ModeFlying {
		return
	}
	if e.stats.boosterUses == 0 || e.state.BoosterCharges <= 0 || e.state.BoosterTime > 0 {
		return
	}
	e.state.BoosterCharges--
	e.state.Velocity = e.state.Velocity.Add(mgl64.Vec3{
		0,
		e.stats.boosterPower * BoosterUpFraction,
		e.stats.boosterPower,
	})
	e.state.BoosterTime = BoosterDuration
}

// SelectCheckpoint moves the next run's start to an unlocked zone. Ignored
// mid-pull and mid-flight.
func (e *Engine) SelectCheckpoint(zone string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode == models.ModePulling || e.state.Mode == models.ModeFlying {
		return
	}
	if _, ok := world.ZoneByID(zone); !ok || !e.store.CheckpointUnlocked(zone) {
		return
	}
	e.checkpoint = zone
	if e.state.Mode == models.ModeReady {
		e.resetLocked()
	}
}

// ContinueAfterCrash returns to Ready at the selected checkpoint.
func (e *Engine) ContinueAfterCrash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode != models.ModeCrashed {
		return
	}
	e.resetLocked()
}

// PurchaseUpgrade raises an upgrade one tier, deducting coins. It is a strict
// no-op on any failed gate: unknown key, max tier, unmet prerequisite, or an
// insufficient balance.
func (e *Engine) PurchaseUpgrade(key string) (int, error) {
	e.mu.Lock()
	tier, err := e.purchaseLocked(key)
	evs, sink := e.takePendingLocked()
	e.mu.Unlock()
	send(evs, sink)
	return tier, err
}

func (e *Engine) purchaseLocked(key string) (int, error) {
	def, ok := e.cat.Definition(key)
	if !ok {
		return 0, fmt.Errorf("unknown upgrade %q", key)
	}
	level := e.store.UpgradeLevel(key)
	requiresSatisfied := def.Requires == "" || e.store.UpgradeLevel(def.Requires) >= 1
	if !e.cat.Purchasable(key, level, requiresSatisfied) {
		return 0, fmt.Errorf("upgrade %q not purchasable at tier %d", key, level)
	}
	cost, ok := e.cat.NextCost(key, level)
	if !ok {
		return 0, fmt.Errorf("upgrade %q already at max tier", key)
	}
	if !e.store.SpendCoins(cost) {
		return 0, fmt.Errorf("insufficient coins")
	}
	newTier := level + 1
	e.store.SetUpgradeLevel(key, newTier)
	e.refreshStatsLocked()
	e.emitLocked(models.Event{Type: models.EventUpgradePurchased, Key: key, Tier: newTier})
	return newTier, nil
}

// ==========
// tick loop

// Start launches the cooperative tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	if e.ticker == nil {
		e.ticker = time.NewTicker(TickInterval)
	} else {
		e.ticker.Reset(TickInterval)
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	ctx, ticker := e.ctx, e.ticker
	e.mu.Unlock()

	go func() {
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				e.Tick(now.Sub(last).Seconds())
				last = now
			}
		}
	}()
}

// Pause stops the tick loop.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.cancel()
	e.ticker.Stop()
}

// Tick advances the simulation by dt seconds (clamped to MaxTickStep). Safe
// to call directly for headless clients and tests.
func (e *Engine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxTickStep {
		dt = MaxTickStep
	}
	e.mu.Lock()
	switch e.state.Mode {
	case models.ModePulling:
		e.state.PullDistance, e.state.LaunchAngle = e.input.pull()
	case models.ModeFlying:
		e.integrateLocked(dt)
		e.recordLocked()
	}
	e.tick++
	evs, sink := e.takePendingLocked()
	e.mu.Unlock()
	send(evs, sink)
}

// takePendingLocked drains the events collected during the current locked
// section along with the sink that should receive them. The sink is invoked
// via send after the lock is released.
func (e *Engine) takePendingLocked() ([]models.Event, func(models.Event)) {
	if len(e.pending) == 0 {
		return nil, nil
	}
	evs := make([]models.Event, len(e.pending))
	copy(evs, e.pending)
	e.pending = e.pending[:0]
	return evs, e.sink
}

func send(evs []models.Event, sink func(models.Event)) {
	if sink == nil {
		return
	}
	for _, ev := range evs {
		sink(ev)
	}
}

func (e *Engine) emitLocked(ev models.Event) {
	e.pending = append(e.pending, ev)
}

func (e *Engine) recordLocked() {
	if e.recorder == nil {
		return
	}
	err := e.recorder.Record(replay.Keyframe{
		Tick:       e.tick,
		State:      e.state,
		RecordedAt: time.Now(),
	})
	if err != nil {
		log.Printf("sim: %v (recording disabled)", err)
		e.recorder = nil
	}
}

// ==========
// run lifecycle

func (e *Engine) resetLocked() {
	zn, ok := world.ZoneByID(e.checkpoint)
	if !ok {
		zn = world.Zones[0]
	}
	e.refreshStatsLocked()
	e.state = models.FlightState{
		Mode:           models.ModeReady,
		Position:       mgl64.Vec3{0, PlaneHalfHeight, zn.Start},
		LaunchAngle:    0.5,
		StartingOffset: zn.Start,
		HighestZ:       zn.Start,
	}
	e.input.dragging = false
}

func (e *Engine) launchLocked() {
	angle := (15 + e.state.LaunchAngle*50) * math.Pi / 180
	power := math.Max(MinLaunchPower, e.state.PullDistance*LaunchPowerMultiplier) * e.stats.slingshotMult

	e.state.Velocity = mgl64.Vec3{0, math.Sin(angle) * power, math.Cos(angle) * power}

	// Seed a small random tumble; wings make the airframe inherently stable.
	seed := TumbleSeedMax
	if e.stats.hasWings {
		seed *= WingTumbleFactor
	}
	e.state.AngularVelocity = mgl64.Vec3{
		(e.rng.Float64()*2 - 1) * seed,
		(e.rng.Float64()*2 - 1) * seed,
		(e.rng.Float64()*2 - 1) * seed,
	}

	e.state.BoosterCharges = e.stats.boosterUses
	e.state.BoosterTime = 0
	e.state.Mode = models.ModeFlying
}

// settleLocked ends the run, credits coins and persists before the terminal
// state becomes visible as an event.
func (e *Engine) settleLocked(victory bool) {
	e.state.Mode = models.ModeCrashed
	e.state.Victory = victory
	dist := e.state.Distance
	coins := int(math.Floor(dist))
	typ := models.EventCrash
	if victory {
		coins += VictoryBonusCoins
		typ = models.EventVictory
	}
	e.store.AddCoins(coins, dist)
	e.emitLocked(models.Event{Type: typ, Distance: dist, Coins: coins})
}

func (e *Engine) refreshStatsLocked() {
	up := e.store.UpgradeLevel
	c := e.cat
	wings := up(catalog.Wings)
	tail := up(catalog.Tail)
	wheels := up(catalog.Wheels)
	boosters := up(catalog.Boosters)

	slingshot := c.EffectValue(catalog.Slingshot, up(catalog.Slingshot), catalog.EffectPower)
	if slingshot == 0 {
		slingshot = 1.0
	}
	e.stats = flightStats{
		hasWings:      wings >= 1,
		hasTail:       tail >= 1,
		hasWheels:     wheels >= 1,
		wingControl:   c.EffectValue(catalog.Wings, wings, catalog.EffectControl),
		lift:          c.EffectValue(catalog.Wings, wings, catalog.EffectLift),
		pitchAccel:    c.EffectValue(catalog.Tail, tail, catalog.EffectPitch),
		dragCoeff:     BaseDragCoeff * (1 - c.EffectValue(catalog.Aerodynamic, up(catalog.Aerodynamic), catalog.EffectDragReduction)),
		wheelFriction: c.EffectValue(catalog.Wheels, wheels, catalog.EffectFriction),
		slingshotMult: slingshot,
		boosterUses:   int(c.EffectValue(catalog.Boosters, boosters, catalog.EffectUses)),
		boosterPower:  c.EffectValue(catalog.Boosters, boosters, catalog.EffectBoost),
	}
}
