package interaction

import "github.com/rocketscienceinc/tictactoe-xr/internal/entity"

// State is everything the engine owns. It is a value: reducers return a new
// State and never touch the one they were given.
type State struct {
	Board     entity.Board
	Pending   *entity.OptionID
	Selected  *entity.CellID
	Consumed  [entity.OptionCount]bool
	Highlight entity.Target
	// Current is the hit of the last frame, used by activations that carry no hit.
	Current entity.HitResult
}

// ReduceFrame applies one frame's hit to the highlight machine.
func ReduceFrame(state State, hit entity.HitResult) (State, []Effect) {
	var effects []Effect

	state.Highlight, effects = Transition(state.Highlight, hit)
	state.Current = hit

	return state, effects
}

// ReduceActivate runs the selection protocol for an activation on hit.
// Every input that does not arm, disarm or commit is a no-op.
func ReduceActivate(state State, hit entity.HitResult) (State, []Effect) {
	if hit.Object != nil && !hit.Object.Interactive() {
		return state, nil
	}

	switch hit.Kind {
	case entity.KindOption:
		return activateOption(state, hit)
	case entity.KindCell:
		return activateCell(state, hit)
	default:
		return state, nil
	}
}

func activateOption(state State, hit entity.HitResult) (State, []Effect) {
	option := hit.Option
	if !consumable(state, option) {
		return state, nil
	}

	if state.Pending != nil && state.Pending.Index == option.Index {
		state.Pending = nil
		return state, []Effect{optionEffect(EffectArmedHide, option, nil)}
	}

	state.Pending = &option

	return state, []Effect{optionEffect(EffectArmedShow, option, transformOf(hit))}
}

func activateCell(state State, hit entity.HitResult) (State, []Effect) {
	if !hit.Cell.Valid() {
		return state, nil
	}

	if state.Pending == nil {
		return selectCell(state, hit)
	}

	option := *state.Pending
	if !consumable(state, option) {
		return state, nil
	}

	prev, err := state.Board.Fill(hit.Cell, option.Text)
	if err != nil {
		return state, nil
	}

	state.Consumed[option.Index] = true
	state.Pending = nil

	filled := cellEffect(EffectCellFilled, hit.Cell, nil)
	filled.Text = option.Text
	if prev.Filled {
		filled.Replaced = prev.Text
	}

	return state, []Effect{
		optionEffect(EffectArmedHide, option, nil),
		optionEffect(EffectOptionRetired, option, nil),
		filled,
	}
}

// selectCell frames the triggered cell. The board is left as it is.
func selectCell(state State, hit entity.HitResult) (State, []Effect) {
	if state.Selected != nil && *state.Selected == hit.Cell {
		return state, nil
	}

	cell := hit.Cell
	state.Selected = &cell

	return state, []Effect{cellEffect(EffectCellSelectedShow, cell, transformOf(hit))}
}

func consumable(state State, option entity.OptionID) bool {
	if option.Index < 0 || option.Index >= len(state.Consumed) {
		return false
	}

	return !state.Consumed[option.Index]
}
