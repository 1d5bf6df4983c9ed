package interaction

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// Event is a typed input pushed into the engine by the frame loop or the input layer.
type Event interface{ isEvent() }

// FrameTick runs the hit test for one presented frame.
type FrameTick struct {
	Ray vmath.Ray
}

// Activate is a trigger press or click. A nil Hit uses the target cached by
// the last FrameTick.
type Activate struct {
	Hit *entity.HitResult
}

func (FrameTick) isEvent() {}
func (Activate) isEvent()  {}

type registry interface {
	ObjectSource
	Cell(cell entity.CellID) (*entity.InteractiveObject, bool)
	Option(index int) (*entity.InteractiveObject, bool)
	Retire(index int) bool
	Reset()
}

// CellFilledFunc is called after a commit, outside the engine lock.
type CellFilledFunc func(cell entity.CellID, text string)

type Option func(*Engine)

func WithCellFilledHandler(fn CellFilledFunc) Option {
	return func(e *Engine) {
		e.onCellFilled = fn
	}
}

// Engine owns the board, the pending selection and the highlight target of
// one session. It holds the registry but does not own it.
type Engine struct {
	logger   *slog.Logger
	registry registry

	mu    sync.Mutex
	state State

	onCellFilled CellFilledFunc
}

func New(logger *slog.Logger, registry registry, opts ...Option) *Engine {
	engine := &Engine{
		logger:   logger.With("component", "interaction"),
		registry: registry,
		state:    State{Board: entity.NewBoard()},
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Dispatch applies ev and returns the effects to render. It never fails:
// an unexpected panic is logged and the event is dropped.
func (that *Engine) Dispatch(ev Event) []Effect {
	effects := that.dispatch(ev)

	if that.onCellFilled != nil {
		for _, effect := range effects {
			if effect.Type == EffectCellFilled && effect.Cell != nil {
				that.notifyCellFilled(*effect.Cell, effect.Text)
			}
		}
	}

	return effects
}

func (that *Engine) notifyCellFilled(cell entity.CellID, text string) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("cell filled handler panicked", "cell", cell.String(), "panic", r)
		}
	}()

	that.onCellFilled(cell, text)
}

func (that *Engine) dispatch(ev Event) (effects []Effect) {
	that.mu.Lock()
	defer that.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("event dropped after panic", "event", ev, "panic", r)
			effects = nil
		}
	}()

	switch e := ev.(type) {
	case FrameTick:
		hit := HitTest(e.Ray, that.registry)
		that.state, effects = ReduceFrame(that.state, hit)

	case Activate:
		hit := that.state.Current
		if e.Hit != nil {
			hit = that.resolve(*e.Hit)
		}

		var next State
		next, effects = ReduceActivate(that.state, hit)
		that.state = next
		that.applyToRegistry(effects)
		that.logActivation(hit, effects)
	}

	return effects
}

// Tick is Dispatch(FrameTick{ray}).
func (that *Engine) Tick(ray vmath.Ray) []Effect {
	return that.Dispatch(FrameTick{Ray: ray})
}

// Activate applies an activation on the target cached by the last Tick.
func (that *Engine) Activate() []Effect {
	return that.Dispatch(Activate{})
}

// OnActivate applies an activation on hit as seen by the input layer.
func (that *Engine) OnActivate(hit entity.HitResult) []Effect {
	return that.Dispatch(Activate{Hit: &hit})
}

// OnSessionStart clears the board and every transient state and re-enables
// all registered objects. It returns the effects hiding leftover visuals.
func (that *Engine) OnSessionStart() []Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	effects := that.hideAll()
	that.state = State{Board: entity.NewBoard()}
	that.registry.Reset()

	return effects
}

// OnSessionEnd hides every visual and forgets the pending option. The board
// stays readable until the next session starts.
func (that *Engine) OnSessionEnd() []Effect {
	that.mu.Lock()
	defer that.mu.Unlock()

	effects := that.hideAll()
	that.state.Highlight = entity.NoTarget
	that.state.Selected = nil
	that.state.Pending = nil
	that.state.Current = entity.NoHit

	return effects
}

func (that *Engine) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Board
}

// Pending returns the armed option, if any.
func (that *Engine) Pending() (entity.OptionID, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state.Pending == nil {
		return entity.OptionID{}, false
	}

	return *that.state.Pending, true
}

func (that *Engine) Highlight() entity.Target {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Highlight
}

// Current is the hit cached by the last frame.
func (that *Engine) Current() entity.HitResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Current
}

// resolve swaps a hit reported by the input layer for the registered object it
// names. Unknown and retired targets resolve to no hit, and option text always
// comes from the registered tile.
func (that *Engine) resolve(hit entity.HitResult) entity.HitResult {
	var (
		obj *entity.InteractiveObject
		ok  bool
	)

	switch hit.Kind {
	case entity.KindCell:
		obj, ok = that.registry.Cell(hit.Cell)
	case entity.KindOption:
		obj, ok = that.registry.Option(hit.Option.Index)
	}

	if !ok || !obj.Interactive() {
		return entity.NoHit
	}

	return entity.HitOf(obj, hit.Distance)
}

func (that *Engine) hideAll() []Effect {
	var effects []Effect

	switch h := that.state.Highlight; h.Kind {
	case entity.KindCell:
		effects = append(effects, cellEffect(EffectCellHighlightHide, h.Cell, nil))
	case entity.KindOption:
		effects = append(effects, optionEffect(EffectOptionHighlightHide, h.Option, nil))
	}

	if that.state.Selected != nil {
		effects = append(effects, cellEffect(EffectCellSelectedHide, *that.state.Selected, nil))
	}

	if that.state.Pending != nil {
		effects = append(effects, optionEffect(EffectArmedHide, *that.state.Pending, nil))
	}

	return effects
}

func (that *Engine) applyToRegistry(effects []Effect) {
	for _, effect := range effects {
		if effect.Type == EffectOptionRetired && effect.Option != nil {
			that.registry.Retire(effect.Option.Index)
		}
	}
}

func (that *Engine) logActivation(hit entity.HitResult, effects []Effect) {
	log := that.logger.With("method", "activate", "target", hit.Kind.String())

	if len(effects) == 0 {
		log.Debug("activation ignored")
		return
	}

	for _, effect := range effects {
		switch effect.Type {
		case EffectArmedShow:
			log.Debug("option armed", "option", effect.Option.Index)
		case EffectArmedHide:
			log.Debug("option disarmed", "option", effect.Option.Index)
		case EffectCellFilled:
			log.Info("cell filled", "cell", effect.Cell.String(), "text", effect.Text, "replaced", effect.Replaced)
		}
	}
}
