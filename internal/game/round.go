package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/sumukhanand/clamor/internal/level"
	"github.com/sumukhanand/clamor/internal/timer"
)

const (
	DefaultPoolSize = 50
	roundTimer      = "round"
)

var (
	ErrPlayerCount = errors.New("unsupported player count")
	ErrDuration    = errors.New("round duration must be positive")
	ErrNotOver     = errors.New("round is not over")
)

// Phase is the round lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseRoundOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseRoundOver:
		return "round_over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Result is the outcome of a finished round. Winner is -1 for a draw, in
// which case Survivors lists everyone still standing (possibly nobody).
type Result struct {
	Round     uuid.UUID `msgpack:"round"`
	Winner    int       `msgpack:"winner"`
	Survivors []int     `msgpack:"survivors"`
}

// Draw reports whether the round ended without a single winner
func (r Result) Draw() bool { return r.Winner < 0 }

// Listener receives end-of-round events
type Listener interface {
	RoundOver(Result)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(Result)

func (f ListenerFunc) RoundOver(r Result) { f(r) }

// Options configures a Round
type Options struct {
	Levels     *level.Set   // nil uses level.Builtin()
	PoolSize   int          // missile slots, 0 uses DefaultPoolSize
	CameraLerp float64      // 0 snaps the camera (same as 1)
	Viewport   [2]int       // zero uses 1024x768
	Logger     *slog.Logger // nil discards
	Listener   Listener
}

// Round owns every live entity and drives them a frame at a time. It is not
// safe for concurrent use.
type Round struct {
	opts Options
	log  *slog.Logger

	id       uuid.UUID
	phase    Phase
	paused   bool
	frame    uint64
	duration float64
	result   Result

	totalPlayers  int
	livingPlayers int

	players  []*Player // indexed by player; nil once removed
	missiles []*Missile
	mines    []*Mine
	walls    []*Wall
	powerups []*Powerup

	timers  *timer.Scheduler
	pool    *Pool
	camera  Camera
	effects []Effect
	pending pending
}

// NewRound returns an idle round
func NewRound(opts Options) *Round {
	if opts.Levels == nil {
		opts.Levels = level.Builtin()
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.CameraLerp <= 0 {
		opts.CameraLerp = 1
	}
	if opts.Viewport == ([2]int{}) {
		opts.Viewport = [2]int{1024, 768}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Round{
		opts:    opts,
		log:     opts.Logger,
		timers:  timer.New(),
		pool:    NewPool(opts.PoolSize),
		camera:  NewCamera(opts.CameraLerp),
		pending: newPending(),
	}
}

// InitRound places players, walls and powerups for playerCount and starts
// the round clock. A running round is torn down first.
func (r *Round) InitRound(playerCount int, duration float64) error {
	if duration <= 0 || math.IsNaN(duration) {
		return fmt.Errorf("%w: %v", ErrDuration, duration)
	}
	layout, err := r.opts.Levels.For(playerCount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlayerCount, err)
	}
	if r.phase != PhaseIdle {
		r.TeardownRound()
	}

	r.id = uuid.New()
	r.totalPlayers = playerCount
	r.livingPlayers = playerCount
	r.duration = duration
	r.result = Result{}
	r.frame = 0
	r.paused = false

	r.players = make([]*Player, playerCount)
	for i := range r.players {
		p := NewPlayer(i, r.timers, r)
		p.Place(layout.Spawn(i))
		r.players[i] = p
	}
	for _, w := range layout.Walls {
		r.walls = append(r.walls, NewWall(w))
	}
	for _, pu := range layout.Powerups {
		r.powerups = append(r.powerups, NewPowerup(pu))
	}
	r.camera = NewCamera(r.opts.CameraLerp)
	r.timers.Add(roundTimer, duration, r.endRound, false)
	r.phase = PhaseActive

	r.log.Info("round started",
		"round", r.id,
		"players", playerCount,
		"duration", duration,
		"walls", len(r.walls),
		"powerups", len(r.powerups),
	)
	return nil
}

// TeardownRound drops every entity and pending timer
func (r *Round) TeardownRound() {
	for _, m := range r.missiles {
		r.pool.Release(m)
	}
	r.missiles = nil
	r.mines = nil
	r.walls = nil
	r.powerups = nil
	r.players = nil
	r.effects = nil
	r.pending.reset()
	r.timers.Clear()

	if r.phase != PhaseIdle {
		r.log.Info("round torn down", "round", r.id, "frames", r.frame)
	}
	r.phase = PhaseIdle
	r.paused = false
	r.totalPlayers = 0
	r.livingPlayers = 0
}

// SetPaused freezes or resumes an active round and every entity in it
func (r *Round) SetPaused(paused bool) {
	if r.phase != PhaseActive || r.paused == paused {
		return
	}
	r.paused = paused
	r.each(func(s Simulatable) { s.SetPaused(paused) })
	r.log.Debug("round paused", "round", r.id, "paused", paused)
}

// Update advances an active, unpaused round by dt seconds: camera, timers,
// entities, collisions, removals, then the survivor check.
func (r *Round) Update(dt float64) {
	if r.phase != PhaseActive || r.paused || dt <= 0 {
		return
	}
	r.frame++

	r.camera.Frame(r.livingPositions())
	r.timers.Advance(dt)
	if r.phase != PhaseActive {
		return
	}

	for _, p := range r.players {
		if p != nil {
			p.Update(dt)
		}
	}
	for _, m := range r.missiles {
		m.Integrate(dt)
	}
	for _, m := range r.mines {
		m.Integrate(dt)
	}

	r.checkCollisions()
	r.flush()

	if r.livingPlayers <= 1 {
		r.endRound()
	}
}

// HandleInput applies one frame of intent to player index
func (r *Round) HandleInput(index int, in Intent) {
	if r.phase != PhaseActive || r.paused {
		return
	}
	p := r.Player(index)
	if p == nil || !p.Alive {
		return
	}
	in.apply(p)
}

// AcceptResult starts a fresh round with the same player count and duration
func (r *Round) AcceptResult() error {
	if r.phase != PhaseRoundOver {
		return fmt.Errorf("%w: phase %s", ErrNotOver, r.phase)
	}
	players, duration := r.totalPlayers, r.duration
	r.TeardownRound()
	return r.InitRound(players, duration)
}

// endRound freezes the arena and reports the survivors. It runs either from
// the round timer, whose entry reports zero remaining and unlinks itself, or
// from the survivor check, which cancels the timer.
func (r *Round) endRound() {
	if r.phase != PhaseActive {
		return
	}
	if r.timers.Remaining(roundTimer) > 0 {
		r.timers.Remove(roundTimer)
	}

	survivors := make([]int, 0, r.livingPlayers)
	for _, p := range r.players {
		if p != nil {
			survivors = append(survivors, p.Index)
		}
	}
	winner := -1
	if len(survivors) == 1 {
		winner = survivors[0]
	}
	r.result = Result{Round: r.id, Winner: winner, Survivors: survivors}
	r.phase = PhaseRoundOver
	r.each(func(s Simulatable) { s.SetPaused(true) })

	r.log.Info("round over",
		"round", r.id,
		"winner", winner,
		"survivors", survivors,
		"frames", r.frame,
	)
	if r.opts.Listener != nil {
		r.opts.Listener.RoundOver(r.result)
	}
}

func (r *Round) each(fn func(Simulatable)) {
	for _, p := range r.players {
		if p != nil {
			fn(p)
		}
	}
	for _, m := range r.missiles {
		fn(m)
	}
	for _, m := range r.mines {
		fn(m)
	}
	for _, w := range r.walls {
		fn(w)
	}
	for _, pu := range r.powerups {
		fn(pu)
	}
}

func (r *Round) livingPositions() []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, p := range r.players {
		if p != nil && p.Alive {
			out = append(out, p.Position())
		}
	}
	return out
}

func (r *Round) spawnMissile(p *Player, damage int) bool {
	m, ok := r.pool.Acquire()
	if !ok {
		r.log.Debug("missile pool exhausted", "round", r.id, "player", p.Index)
		return false
	}
	m.launch(p, damage)
	r.missiles = append(r.missiles, m)
	return true
}

func (r *Round) spawnMine(p *Player, damage int) bool {
	m := NewMine(p, damage)
	if !r.timers.Add(mineTimer(m), MineArmDelay, m.Arm, false) {
		return false
	}
	r.mines = append(r.mines, m)
	return true
}

func (r *Round) emit(kind EffectKind, owner int, at mgl64.Vec3) {
	r.effects = append(r.effects, Effect{
		Kind:   kind,
		Owner:  owner,
		World:  at,
		Screen: r.camera.Project(at, r.opts.Viewport),
	})
}

func (r *Round) removePlayer(index int) {
	if index < 0 || index >= len(r.players) || r.players[index] == nil {
		return
	}
	r.players[index] = nil
	r.livingPlayers--
	r.log.Info("player removed", "round", r.id, "player", index, "living", r.livingPlayers)
}

// ID returns the identity of the current round
func (r *Round) ID() uuid.UUID { return r.id }

func (r *Round) Phase() Phase         { return r.phase }
func (r *Round) Paused() bool         { return r.paused }
func (r *Round) Frame() uint64        { return r.frame }
func (r *Round) Result() Result       { return r.result }
func (r *Round) LivingPlayers() int   { return r.livingPlayers }
func (r *Round) TotalPlayers() int    { return r.totalPlayers }
func (r *Round) Camera() Camera       { return r.camera }
func (r *Round) Pool() *Pool          { return r.pool }
func (r *Round) Missiles() []*Missile { return r.missiles }
func (r *Round) Mines() []*Mine       { return r.mines }
func (r *Round) Walls() []*Wall       { return r.walls }
func (r *Round) Powerups() []*Powerup { return r.powerups }

// Player returns player index, or nil once removed
func (r *Round) Player(index int) *Player {
	if index < 0 || index >= len(r.players) {
		return nil
	}
	return r.players[index]
}

// RemainingTime returns seconds left on the round clock
func (r *Round) RemainingTime() float64 {
	return max(r.timers.Remaining(roundTimer), 0)
}

// HUD returns the overlay for the current frame
func (r *Round) HUD() HUDState {
	h := HUDState{RoundTime: roundTime(r.RemainingTime())}
	for _, p := range r.players {
		if p != nil {
			h.Players = append(h.Players, p.ToState())
		}
	}
	return h
}

// Drawables lists every active, unpaused entity the renderer should draw
func (r *Round) Drawables() []Drawable {
	var out []Drawable
	for _, p := range r.players {
		if p != nil && !p.Paused {
			out = append(out, drawable(&p.Actor, p.Index, p.hit))
		}
	}
	for _, m := range r.missiles {
		if m.Active && !m.Paused {
			out = append(out, drawable(&m.Actor, m.Owner, false))
		}
	}
	for _, m := range r.mines {
		if m.Drawable && !m.Paused {
			out = append(out, drawable(&m.Actor, m.Owner, false))
		}
	}
	for _, w := range r.walls {
		if !w.Paused {
			out = append(out, drawable(&w.Actor, -1, false))
		}
	}
	for _, pu := range r.powerups {
		if !pu.Paused {
			out = append(out, drawable(&pu.Actor, -1, false))
		}
	}
	return out
}

// Effects drains the effects emitted since the last call
func (r *Round) Effects() []Effect {
	out := r.effects
	r.effects = nil
	return out
}
