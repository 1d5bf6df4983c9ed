package interaction

import "github.com/rocketscienceinc/tictactoe-xr/internal/entity"

// Transition advances the highlight machine by one frame. The returned
// effects hide the outgoing visual before showing the incoming one, so a
// renderer applying them in order never shows two highlights.
func Transition(prev entity.Target, hit entity.HitResult) (entity.Target, []Effect) {
	next := hit.Target()
	if prev.Same(next) {
		return prev, nil
	}

	transform := transformOf(hit)

	if prev.Kind == next.Kind {
		switch next.Kind {
		case entity.KindCell:
			return next, []Effect{cellEffect(EffectCellHighlightMove, next.Cell, transform)}
		case entity.KindOption:
			return next, []Effect{optionEffect(EffectOptionHighlightMove, next.Option, transform)}
		}
	}

	var effects []Effect

	switch prev.Kind {
	case entity.KindCell:
		effects = append(effects, cellEffect(EffectCellHighlightHide, prev.Cell, nil))
	case entity.KindOption:
		effects = append(effects, optionEffect(EffectOptionHighlightHide, prev.Option, nil))
	}

	switch next.Kind {
	case entity.KindCell:
		effects = append(effects, cellEffect(EffectCellHighlightShow, next.Cell, transform))
	case entity.KindOption:
		effects = append(effects, optionEffect(EffectOptionHighlightShow, next.Option, transform))
	}

	return next, effects
}
