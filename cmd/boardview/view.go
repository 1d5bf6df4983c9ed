package main

import (
	"fmt"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/interaction"
)

const (
	cellWidth  = 9
	cellHeight = 3
	tileWidth  = 7
)

var (
	styleDefault   = tcell.StyleDefault
	styleHighlight = tcell.StyleDefault.Reverse(true)
	styleArmed     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Underline(true)
	styleRetired   = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// view draws the board and the palette from the effect-driven Visuals.
type view struct {
	screen  tcell.Screen
	visuals *interaction.Visuals
	options []entity.OptionID
	topic   string
	status  string
}

func newView(screen tcell.Screen, objects []entity.InteractiveObject, topic string) *view {
	var options []entity.OptionID
	for _, obj := range objects {
		if obj.Kind == entity.KindOption {
			options = append(options, obj.Option)
		}
	}
	slices.SortFunc(options, func(a, b entity.OptionID) int { return a.Index - b.Index })

	return &view{
		screen:  screen,
		visuals: interaction.NewVisuals(),
		options: options,
		topic:   topic,
	}
}

// apply folds a batch into the visuals and reports whether a cell was filled.
func (that *view) apply(effects []interaction.Effect) bool {
	that.visuals.Apply(effects)

	for _, effect := range effects {
		if effect.Type == interaction.EffectCellFilled {
			that.status = fmt.Sprintf("placed %q at %s", effect.Text, effect.Cell)
			return true
		}
	}

	return false
}

func (that *view) draw(yaw, pitch float64) {
	that.screen.Clear()

	header := fmt.Sprintf("topic: %s   yaw %+.0f  pitch %+.0f", that.topic, degrees(yaw), degrees(pitch))
	that.text(0, 0, header, styleDefault)

	for i := range entity.BoardCells {
		that.drawCell(entity.CellAt(i))
	}

	paletteY := 2 + entity.GridSize*cellHeight + 1
	if len(that.options) == 0 {
		that.text(0, paletteY, "no options loaded", styleRetired)
	}

	for i, option := range that.options {
		that.drawTile(i, paletteY, option)
	}

	that.text(0, paletteY+4, that.status, styleStatus)
	that.text(0, paletteY+5, "arrows: look  space: trigger  c: recenter  esc: quit", styleRetired)

	that.screen.Show()
}

func (that *view) drawCell(cell entity.CellID) {
	x := cell.Col * cellWidth
	y := 2 + cell.Row*cellHeight

	style := styleDefault
	switch {
	case that.visuals.CellHighlight != nil && *that.visuals.CellHighlight == cell:
		style = styleHighlight
	case that.visuals.SelectedCell != nil && *that.visuals.SelectedCell == cell:
		style = styleSelected
	}

	for dy := range cellHeight {
		for dx := range cellWidth - 1 {
			that.screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}

	that.text(x+1, y+1, center(that.visuals.Cells[cell.Index()], cellWidth-3), style)
}

func (that *view) drawTile(i, baseY int, option entity.OptionID) {
	columns := 3
	x := (i % columns) * (tileWidth + 1)
	y := baseY + i/columns

	style := styleDefault
	switch {
	case that.visuals.Retired[option.Index]:
		style = styleRetired
	case that.visuals.OptionHighlight != nil && that.visuals.OptionHighlight.Index == option.Index:
		style = styleHighlight
	case that.visuals.Armed != nil && that.visuals.Armed.Index == option.Index:
		style = styleArmed
	}

	label := "[" + center(option.Text, tileWidth-2) + "]"
	if that.visuals.Retired[option.Index] {
		label = "[" + center("", tileWidth-2) + "]"
	}

	that.text(x, y, label, style)
}

func (that *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		that.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}

	pad := width - len(runes)
	left := pad / 2

	return fmt.Sprintf("%*s%s%*s", left, "", s, pad-left, "")
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
