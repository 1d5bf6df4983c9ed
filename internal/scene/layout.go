package scene

import (
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// Layout holds the geometry constants of the board and the option palette.
// Lengths are in meters.
type Layout struct {
	CellSize float64
	CellGap  float64
	// CellFill scales the collision plane of a cell relative to CellSize.
	CellFill   float64
	BoardDepth float64

	PanelWidth     float64
	PanelHeight    float64
	PanelSpacing   float64
	PaletteColumns int

	BoardAnchor   vmath.Vec3
	PaletteAnchor vmath.Vec3

	// RecenterDistance and RecenterHeight place the board in front of the viewer.
	RecenterDistance float64
	RecenterHeight   float64
}

func DefaultLayout() Layout {
	return Layout{
		CellSize:   1.2,
		CellGap:    0.05,
		CellFill:   0.9,
		BoardDepth: -2,

		PanelWidth:     0.4,
		PanelHeight:    0.2,
		PanelSpacing:   0.05,
		PaletteColumns: 3,

		BoardAnchor:   vmath.V3(0, 1.6, -1.5),
		PaletteAnchor: vmath.V3(0, 0.4, -0.8),

		RecenterDistance: 1.5,
		RecenterHeight:   1.6,
	}
}

func (that Layout) cellSize() entity.Size {
	side := that.CellSize * that.CellFill
	return entity.Size{Width: side, Height: side}
}

func (that Layout) panelSize() entity.Size {
	return entity.Size{Width: that.PanelWidth, Height: that.PanelHeight}
}

// cellOffset is the cell centre relative to the board anchor.
func (that Layout) cellOffset(cell entity.CellID) vmath.Vec3 {
	half := (that.CellSize*entity.GridSize + that.CellGap*(entity.GridSize-1)) / 2

	return vmath.V3(
		float64(cell.Col)*that.CellSize-half+that.CellSize/2,
		-float64(cell.Row)*that.CellSize+half-that.CellSize/2,
		that.BoardDepth,
	)
}

func (that Layout) paletteRows(count int) int {
	cols := max(that.PaletteColumns, 1)
	return max((count+cols-1)/cols, 1)
}

// paletteLift raises the tile container by half the background height so the
// palette grows downward from its anchor.
func (that Layout) paletteLift(count int) float64 {
	bgHeight := (that.PanelHeight+that.PanelSpacing)*float64(that.paletteRows(count)) + that.PanelSpacing
	return bgHeight / 2
}

// tileOffset is the tile centre relative to the tile container.
func (that Layout) tileOffset(index int) vmath.Vec3 {
	cols := max(that.PaletteColumns, 1)
	row, col := index/cols, index%cols

	return vmath.V3(
		float64(col-(cols-1)/2)*(that.PanelWidth+that.PanelSpacing),
		-float64(row)*(that.PanelHeight+that.PanelSpacing),
		0,
	)
}

// Board is the 3x3 grid of cell surfaces.
type Board struct {
	layout Layout
	anchor vmath.Transform
	cells  [entity.BoardCells]*entity.InteractiveObject
}

func newBoard(layout Layout, registry *Registry) *Board {
	board := &Board{layout: layout, anchor: vmath.NewTransform(vmath.Vec3{})}

	for i := range board.cells {
		cell := entity.CellAt(i)
		board.cells[i] = entity.NewCellObject(cell, board.cellTransform(cell), layout.cellSize())
		registry.Register(board.cells[i])
	}

	return board
}

func (that *Board) Anchor() vmath.Transform {
	return that.anchor
}

// Place moves the whole board so its anchor sits at anchor.
func (that *Board) Place(registry *Registry, anchor vmath.Transform) {
	that.anchor = anchor
	registry.Update(entity.KindCell, func(obj *entity.InteractiveObject) {
		obj.Transform = that.cellTransform(obj.Cell)
	})
}

func (that *Board) cellTransform(cell entity.CellID) vmath.Transform {
	return vmath.Transform{
		Position: that.anchor.ToWorld(that.layout.cellOffset(cell)),
		Rotation: that.anchor.Rotation,
	}
}

// Palette is the grid of option tiles. The tile container always turns to
// face the viewer.
type Palette struct {
	layout Layout
	anchor vmath.Vec3
	facing vmath.Quat
	tiles  []*entity.InteractiveObject
}

func newPalette(layout Layout, registry *Registry, set *entity.OptionSet) *Palette {
	palette := &Palette{layout: layout, facing: vmath.Identity}

	for _, id := range set.IDs() {
		palette.tiles = append(palette.tiles, entity.NewOptionObject(id, vmath.Transform{}, layout.panelSize()))
	}

	// positions depend on the tile count, so place after all tiles exist
	for _, tile := range palette.tiles {
		tile.Transform = palette.tileTransform(tile.Option.Index)
		registry.Register(tile)
	}

	return palette
}

func (that *Palette) Len() int {
	return len(that.tiles)
}

func (that *Palette) Tiles() []*entity.InteractiveObject {
	return that.tiles
}

// Place moves the palette anchor without changing its facing.
func (that *Palette) Place(registry *Registry, anchor vmath.Vec3) {
	that.anchor = anchor
	that.apply(registry)
}

// FaceCamera turns the tile container toward eye. It must run before the
// frame's hit test so tile orientations match what the viewer sees.
func (that *Palette) FaceCamera(registry *Registry, eye vmath.Vec3) {
	that.facing = vmath.LookAt(that.container(), eye, vmath.UnitY)
	that.apply(registry)
}

func (that *Palette) apply(registry *Registry) {
	registry.Update(entity.KindOption, func(obj *entity.InteractiveObject) {
		obj.Transform = that.tileTransform(obj.Option.Index)
	})
}

func (that *Palette) container() vmath.Vec3 {
	return that.anchor.Add(vmath.V3(0, that.layout.paletteLift(len(that.tiles)), 0))
}

func (that *Palette) tileTransform(index int) vmath.Transform {
	return vmath.Transform{
		Position: that.container().Add(that.facing.Rotate(that.layout.tileOffset(index))),
		Rotation: that.facing,
	}
}
