package interaction

import (
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// EffectType names a visual or state change the renderer has to apply.
type EffectType string

const (
	EffectCellHighlightShow   EffectType = "cell_highlight:show"
	EffectCellHighlightMove   EffectType = "cell_highlight:move"
	EffectCellHighlightHide   EffectType = "cell_highlight:hide"
	EffectOptionHighlightShow EffectType = "option_highlight:show"
	EffectOptionHighlightMove EffectType = "option_highlight:move"
	EffectOptionHighlightHide EffectType = "option_highlight:hide"
	EffectCellSelectedShow    EffectType = "cell_selected:show"
	EffectCellSelectedHide    EffectType = "cell_selected:hide"
	EffectArmedShow           EffectType = "armed:show"
	EffectArmedHide           EffectType = "armed:hide"
	EffectCellFilled          EffectType = "cell:filled"
	EffectOptionRetired       EffectType = "option:retired"
)

// Effect is one output of the engine. Effects of a single event form a batch
// that renderers apply before presenting the next frame, in order.
type Effect struct {
	Type      EffectType       `json:"type"`
	Cell      *entity.CellID   `json:"cell,omitempty"`
	Option    *entity.OptionID `json:"option,omitempty"`
	Transform *vmath.Transform `json:"transform,omitempty"`
	Text      string           `json:"text,omitempty"`
	// Replaced is the previous text of a cell that was overwritten.
	Replaced string `json:"replaced,omitempty"`
}

func cellEffect(typ EffectType, cell entity.CellID, transform *vmath.Transform) Effect {
	return Effect{Type: typ, Cell: &cell, Transform: transform}
}

func optionEffect(typ EffectType, option entity.OptionID, transform *vmath.Transform) Effect {
	return Effect{Type: typ, Option: &option, Transform: transform}
}

func transformOf(hit entity.HitResult) *vmath.Transform {
	if hit.Object == nil {
		return nil
	}

	transform := hit.Object.Transform
	return &transform
}
