package interaction

import (
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
)

// Visuals is a renderer-side model of what is on screen, built only from
// effects. Clients that do not keep their own scene graph can use it as is.
type Visuals struct {
	CellHighlight   *entity.CellID
	OptionHighlight *entity.OptionID
	SelectedCell    *entity.CellID
	Armed           *entity.OptionID
	Cells           [entity.BoardCells]string
	Retired         map[int]bool
}

func NewVisuals() *Visuals {
	return &Visuals{Retired: make(map[int]bool)}
}

// Apply replays a batch of effects in order.
func (that *Visuals) Apply(effects []Effect) {
	for _, effect := range effects {
		that.apply(effect)
	}
}

func (that *Visuals) apply(effect Effect) {
	switch effect.Type {
	case EffectCellHighlightShow, EffectCellHighlightMove:
		cell := *effect.Cell
		that.CellHighlight = &cell
	case EffectCellHighlightHide:
		that.CellHighlight = nil
	case EffectOptionHighlightShow, EffectOptionHighlightMove:
		option := *effect.Option
		that.OptionHighlight = &option
	case EffectOptionHighlightHide:
		that.OptionHighlight = nil
	case EffectCellSelectedShow:
		cell := *effect.Cell
		that.SelectedCell = &cell
	case EffectCellSelectedHide:
		that.SelectedCell = nil
	case EffectArmedShow:
		option := *effect.Option
		that.Armed = &option
	case EffectArmedHide:
		that.Armed = nil
	case EffectCellFilled:
		that.Cells[effect.Cell.Index()] = effect.Text
	case EffectOptionRetired:
		that.Retired[effect.Option.Index] = true
	}
}

// Highlights counts the visible highlight frames; it must never exceed one.
func (that *Visuals) Highlights() int {
	count := 0
	if that.CellHighlight != nil {
		count++
	}
	if that.OptionHighlight != nil {
		count++
	}

	return count
}
