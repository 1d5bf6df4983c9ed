package scene

import (
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// Scene owns the interactive geometry of one session: the board, the
// optional palette and the registry both are published in.
type Scene struct {
	layout   Layout
	registry *Registry
	board    *Board
	palette  *Palette
}

// New builds the board. The palette stays absent until LoadPalette.
func New(layout Layout) *Scene {
	registry := NewRegistry()

	return &Scene{
		layout:   layout,
		registry: registry,
		board:    newBoard(layout, registry),
	}
}

func (that *Scene) Registry() *Registry {
	return that.registry
}

func (that *Scene) Layout() Layout {
	return that.layout
}

func (that *Scene) Board() *Board {
	return that.board
}

// Palette is nil when no option set is loaded.
func (that *Scene) Palette() *Palette {
	return that.palette
}

// LoadPalette replaces the option tiles with set. A nil set removes the palette.
func (that *Scene) LoadPalette(set *entity.OptionSet) {
	anchor := vmath.Vec3{}
	if that.palette != nil {
		anchor = that.palette.anchor
	}

	that.registry.UnregisterKind(entity.KindOption)
	that.palette = nil

	if set == nil || len(set.Options) == 0 {
		return
	}

	that.palette = newPalette(that.layout, that.registry, set)
	that.palette.Place(that.registry, anchor)
}

// Start moves board and palette to their in-session anchors.
func (that *Scene) Start() {
	that.board.Place(that.registry, vmath.NewTransform(that.layout.BoardAnchor))
	if that.palette != nil {
		that.palette.Place(that.registry, that.layout.PaletteAnchor)
	}
}

// End resets both anchors to the origin.
func (that *Scene) End() {
	that.board.Place(that.registry, vmath.NewTransform(vmath.Vec3{}))
	if that.palette != nil {
		that.palette.Place(that.registry, vmath.Vec3{})
	}
}

// Recenter places the board in front of the viewer at a fixed height, facing them.
func (that *Scene) Recenter(viewer vmath.Transform) {
	ahead := viewer.Rotation.Rotate(vmath.Forward.Scale(that.layout.RecenterDistance))
	position := viewer.Position.Add(ahead)
	position.Y = that.layout.RecenterHeight

	that.board.Place(that.registry, vmath.Transform{
		Position: position,
		Rotation: vmath.LookAt(position, viewer.Position, vmath.UnitY),
	})
}

// FaceCamera turns the palette toward eye; a no-op without a palette.
func (that *Scene) FaceCamera(eye vmath.Vec3) {
	if that.palette != nil {
		that.palette.FaceCamera(that.registry, eye)
	}
}
