package interaction

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/scene"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eye = vmath.V3(0, 1.6, 0)

type filledCall struct {
	cell entity.CellID
	text string
}

func newFixture(t *testing.T, options ...string) (*scene.Scene, *Engine, *[]filledCall) {
	t.Helper()

	sc := scene.New(scene.DefaultLayout())
	if len(options) > 0 {
		sc.LoadPalette(&entity.OptionSet{Options: options})
	}
	sc.Start()
	sc.FaceCamera(eye)

	calls := &[]filledCall{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := New(logger, sc.Registry(), WithCellFilledHandler(func(cell entity.CellID, text string) {
		*calls = append(*calls, filledCall{cell: cell, text: text})
	}))

	return sc, engine, calls
}

func rayAt(obj *entity.InteractiveObject) vmath.Ray {
	return vmath.NewRay(eye, obj.Transform.Position.Sub(eye))
}

func cellRay(t *testing.T, sc *scene.Scene, row, col int) vmath.Ray {
	t.Helper()

	obj, ok := sc.Registry().Cell(entity.CellID{Row: row, Col: col})
	require.True(t, ok)

	return rayAt(obj)
}

func optionRay(t *testing.T, sc *scene.Scene, index int) vmath.Ray {
	t.Helper()

	obj, ok := sc.Registry().Option(index)
	require.True(t, ok)

	return rayAt(obj)
}

// away points at the sky, where nothing is registered.
var away = vmath.NewRay(eye, vmath.UnitY)

func TestHitTest(t *testing.T) {
	t.Run("Reports the aimed cell", func(t *testing.T) {
		// Given: a started scene
		sc, _, _ := newFixture(t, "4", "3", "5")

		// When: aiming at the bottom right cell
		hit := HitTest(cellRay(t, sc, 2, 2), sc.Registry())

		// Then: that cell is reported
		require.Equal(t, entity.KindCell, hit.Kind)
		assert.Equal(t, entity.CellID{Row: 2, Col: 2}, hit.Cell)
		assert.NotNil(t, hit.Object)
		assert.Greater(t, hit.Distance, 0.0)
	})

	t.Run("Reports the aimed option", func(t *testing.T) {
		sc, _, _ := newFixture(t, "4", "3", "5")

		hit := HitTest(optionRay(t, sc, 1), sc.Registry())

		require.Equal(t, entity.KindOption, hit.Kind)
		assert.Equal(t, entity.OptionID{Index: 1, Text: "3"}, hit.Option)
	})

	t.Run("Reports none when nothing is under the ray", func(t *testing.T) {
		sc, _, _ := newFixture(t, "4")

		hit := HitTest(away, sc.Registry())

		assert.True(t, hit.IsNone())
	})

	t.Run("Cell wins over a closer option", func(t *testing.T) {
		// Given: an option one meter ahead and a cell three meters ahead on the same ray
		registry := scene.NewRegistry()
		size := entity.Size{Width: 1, Height: 1}
		registry.Register(entity.NewOptionObject(entity.OptionID{Index: 0, Text: "near"}, vmath.NewTransform(vmath.V3(0, 0, -1)), size))
		registry.Register(entity.NewCellObject(entity.CellID{Row: 1, Col: 1}, vmath.NewTransform(vmath.V3(0, 0, -3)), size))

		// When: casting straight ahead
		hit := HitTest(vmath.NewRay(vmath.Vec3{}, vmath.Forward), registry)

		// Then: the cell is reported
		assert.Equal(t, entity.KindCell, hit.Kind)
		assert.InDelta(t, 3, hit.Distance, 1e-9)
	})

	t.Run("Nearest object of a kind wins, ties keep registration order", func(t *testing.T) {
		registry := scene.NewRegistry()
		size := entity.Size{Width: 1, Height: 1}
		far := entity.NewCellObject(entity.CellID{Row: 0, Col: 0}, vmath.NewTransform(vmath.V3(0, 0, -5)), size)
		nearA := entity.NewCellObject(entity.CellID{Row: 0, Col: 1}, vmath.NewTransform(vmath.V3(0, 0, -2)), size)
		nearB := entity.NewCellObject(entity.CellID{Row: 0, Col: 2}, vmath.NewTransform(vmath.V3(0, 0, -2)), size)
		registry.Register(far)
		registry.Register(nearA)
		registry.Register(nearB)

		hit := HitTest(vmath.NewRay(vmath.Vec3{}, vmath.Forward), registry)

		assert.Same(t, nearA, hit.Object)
	})

	t.Run("Retired options are not reported", func(t *testing.T) {
		sc, _, _ := newFixture(t, "4", "3", "5")
		ray := optionRay(t, sc, 0)
		require.True(t, sc.Registry().Retire(0))

		hit := HitTest(ray, sc.Registry())

		assert.True(t, hit.IsNone())
	})
}

func TestTransition(t *testing.T) {
	cell := func(row, col int) entity.HitResult {
		return entity.HitResult{Kind: entity.KindCell, Cell: entity.CellID{Row: row, Col: col}}
	}
	option := func(index int) entity.HitResult {
		return entity.HitResult{Kind: entity.KindOption, Option: entity.OptionID{Index: index}}
	}

	cases := []struct {
		name  string
		prev  entity.Target
		hit   entity.HitResult
		types []EffectType
	}{
		{name: "idle to cell shows the cell highlight", prev: entity.NoTarget, hit: cell(0, 0), types: []EffectType{EffectCellHighlightShow}},
		{name: "idle to option shows the option highlight", prev: entity.NoTarget, hit: option(2), types: []EffectType{EffectOptionHighlightShow}},
		{name: "cell to other cell moves", prev: entity.CellTarget(entity.CellID{}), hit: cell(1, 2), types: []EffectType{EffectCellHighlightMove}},
		{name: "option to other option moves", prev: entity.OptionTarget(entity.OptionID{Index: 1}), hit: option(3), types: []EffectType{EffectOptionHighlightMove}},
		{name: "cell to none hides", prev: entity.CellTarget(entity.CellID{}), hit: entity.NoHit, types: []EffectType{EffectCellHighlightHide}},
		{name: "option to none hides", prev: entity.OptionTarget(entity.OptionID{}), hit: entity.NoHit, types: []EffectType{EffectOptionHighlightHide}},
		{name: "cell to option hides before showing", prev: entity.CellTarget(entity.CellID{}), hit: option(0), types: []EffectType{EffectCellHighlightHide, EffectOptionHighlightShow}},
		{name: "option to cell hides before showing", prev: entity.OptionTarget(entity.OptionID{}), hit: cell(0, 0), types: []EffectType{EffectOptionHighlightHide, EffectCellHighlightShow}},
		{name: "same cell is a no-op", prev: entity.CellTarget(entity.CellID{Row: 1, Col: 1}), hit: cell(1, 1), types: nil},
		{name: "same option is a no-op", prev: entity.OptionTarget(entity.OptionID{Index: 4}), hit: option(4), types: nil},
		{name: "none to none is a no-op", prev: entity.NoTarget, hit: entity.NoHit, types: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, effects := Transition(tc.prev, tc.hit)

			var types []EffectType
			for _, effect := range effects {
				types = append(types, effect.Type)
			}
			assert.Equal(t, tc.types, types)
			assert.True(t, next.Same(tc.hit.Target()))
		})
	}
}

func TestTransition_NeverShowsTwoHighlights(t *testing.T) {
	// Given: a random walk over cells, options and empty space
	rng := rand.New(rand.NewSource(42))
	hits := []entity.HitResult{entity.NoHit}
	for i := range entity.BoardCells {
		hits = append(hits, entity.HitResult{Kind: entity.KindCell, Cell: entity.CellAt(i)})
		hits = append(hits, entity.HitResult{Kind: entity.KindOption, Option: entity.OptionID{Index: i}})
	}

	visuals := NewVisuals()
	target := entity.NoTarget

	for range 5000 {
		hit := hits[rng.Intn(len(hits))]

		// When: the machine transitions
		var effects []Effect
		target, effects = Transition(target, hit)

		// Then: no intermediate effect leaves two highlights visible
		for _, effect := range effects {
			visuals.Apply([]Effect{effect})
			require.LessOrEqual(t, visuals.Highlights(), 1)
		}

		// And: what is visible matches the hit exactly
		switch hit.Kind {
		case entity.KindCell:
			require.NotNil(t, visuals.CellHighlight)
			require.Equal(t, hit.Cell, *visuals.CellHighlight)
		case entity.KindOption:
			require.NotNil(t, visuals.OptionHighlight)
			require.Equal(t, hit.Option.Index, visuals.OptionHighlight.Index)
		default:
			require.Equal(t, 0, visuals.Highlights())
		}
	}
}

func TestReduceActivate(t *testing.T) {
	obj := entity.NewOptionObject(entity.OptionID{Index: 0, Text: "4"}, vmath.Transform{}, entity.Size{})
	optionHit := entity.HitOf(obj, 1)
	cellHit := entity.HitResult{Kind: entity.KindCell, Cell: entity.CellID{Row: 2, Col: 0}}

	t.Run("Does not mutate the input state", func(t *testing.T) {
		// Given: an armed state
		armed, _ := ReduceActivate(State{}, optionHit)
		require.NotNil(t, armed.Pending)

		// When: committing from it
		committed, _ := ReduceActivate(armed, cellHit)

		// Then: the original state is untouched
		assert.NotNil(t, armed.Pending)
		assert.False(t, armed.Consumed[0])
		assert.Equal(t, entity.NewBoard(), armed.Board)
		assert.True(t, committed.Consumed[0])
	})

	t.Run("Consumed option cannot be armed again", func(t *testing.T) {
		state := State{}
		state.Consumed[0] = true

		next, effects := ReduceActivate(state, optionHit)

		assert.Nil(t, next.Pending)
		assert.Empty(t, effects)
	})

	t.Run("Disabled object is ignored", func(t *testing.T) {
		disabled := entity.NewOptionObject(entity.OptionID{Index: 1, Text: "3"}, vmath.Transform{}, entity.Size{})
		disabled.Enabled = false

		next, effects := ReduceActivate(State{}, entity.HitOf(disabled, 1))

		assert.Nil(t, next.Pending)
		assert.Empty(t, effects)
	})

	t.Run("Out of range option index is ignored", func(t *testing.T) {
		hit := entity.HitResult{Kind: entity.KindOption, Option: entity.OptionID{Index: entity.OptionCount}}

		next, effects := ReduceActivate(State{}, hit)

		assert.Nil(t, next.Pending)
		assert.Empty(t, effects)
	})

	t.Run("Arming another option replaces the armed one", func(t *testing.T) {
		other := entity.HitResult{Kind: entity.KindOption, Option: entity.OptionID{Index: 5, Text: "x"}}
		armed, _ := ReduceActivate(State{}, optionHit)

		next, effects := ReduceActivate(armed, other)

		require.NotNil(t, next.Pending)
		assert.Equal(t, 5, next.Pending.Index)
		require.Len(t, effects, 1)
		assert.Equal(t, EffectArmedShow, effects[0].Type)
	})

	t.Run("Cell without an armed option is selected, board untouched", func(t *testing.T) {
		next, effects := ReduceActivate(State{}, cellHit)

		require.NotNil(t, next.Selected)
		assert.Equal(t, cellHit.Cell, *next.Selected)
		assert.Equal(t, entity.NewBoard(), next.Board)
		assert.Nil(t, next.Pending)
		require.Len(t, effects, 1)
		assert.Equal(t, EffectCellSelectedShow, effects[0].Type)
	})

	t.Run("Commit into a filled cell overwrites it", func(t *testing.T) {
		// Given: a board whose target cell already holds an answer
		state := State{}
		_, err := state.Board.Fill(cellHit.Cell, "old")
		require.NoError(t, err)
		armed, _ := ReduceActivate(state, optionHit)

		// When: committing
		next, effects := ReduceActivate(armed, cellHit)

		// Then: the new text replaces the old one and the effect says so
		slot, _ := next.Board.Get(cellHit.Cell)
		assert.Equal(t, "4", slot.Text)
		require.Len(t, effects, 3)
		assert.Equal(t, EffectCellFilled, effects[2].Type)
		assert.Equal(t, "old", effects[2].Replaced)
	})
}
