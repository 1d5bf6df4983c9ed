package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellID(t *testing.T) {
	t.Run("Returns the cell for a valid row and column", func(t *testing.T) {
		// Given: a row and column inside the grid
		// When: building the cell id
		cell, err := NewCellID(2, 1)

		// Then: it should be addressable by index
		require.NoError(t, err)
		assert.Equal(t, 7, cell.Index())
		assert.Equal(t, cell, CellAt(7))
	})

	t.Run("Error on row out of range", func(t *testing.T) {
		_, err := NewCellID(3, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Error on negative column", func(t *testing.T) {
		_, err := NewCellID(0, -1)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestBoard_Fill(t *testing.T) {
	t.Run("Fills an empty cell", func(t *testing.T) {
		// Given: a new board
		board := NewBoard()
		center := CellID{Row: 1, Col: 1}

		// When: filling the center cell
		prev, err := board.Fill(center, "4")
		require.NoError(t, err)

		// Then: the slot holds the text and was empty before
		assert.Equal(t, Slot{}, prev)
		slot, ok := board.Get(center)
		require.True(t, ok)
		assert.Equal(t, Slot{Text: "4", Filled: true}, slot)
		assert.False(t, board.IsEmpty(center))
		assert.Equal(t, 1, board.FilledCount())
	})

	t.Run("Overwrites a filled cell", func(t *testing.T) {
		// Given: a board with the corner filled
		board := NewBoard()
		corner := CellID{}
		_, err := board.Fill(corner, "a")
		require.NoError(t, err)

		// When: filling it again
		prev, err := board.Fill(corner, "b")
		require.NoError(t, err)

		// Then: the previous content is returned and replaced
		assert.Equal(t, Slot{Text: "a", Filled: true}, prev)
		slot, _ := board.Get(corner)
		assert.Equal(t, "b", slot.Text)
		assert.Equal(t, 1, board.FilledCount())
	})

	t.Run("Error on invalid cell leaves the board unchanged", func(t *testing.T) {
		board := NewBoard()

		_, err := board.Fill(CellID{Row: 5, Col: 5}, "x")

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, NewBoard(), board)
	})
}

func TestBoard_IsFullAndClear(t *testing.T) {
	// Given: a board with every cell filled
	board := NewBoard()
	for i := range BoardCells {
		_, err := board.Fill(CellAt(i), "x")
		require.NoError(t, err)
	}
	assert.True(t, board.IsFull())

	// When: clearing it
	board.Clear()

	// Then: every cell is empty again
	assert.Equal(t, 0, board.FilledCount())
	assert.True(t, board.IsEmpty(CellAt(4)))
}

func TestTarget_Same(t *testing.T) {
	t.Run("Options compare by index only", func(t *testing.T) {
		a := OptionTarget(OptionID{Index: 2, Text: "x"})
		b := OptionTarget(OptionID{Index: 2, Text: "y"})

		assert.True(t, a.Same(b))
	})

	t.Run("Different kinds never match", func(t *testing.T) {
		assert.False(t, CellTarget(CellID{}).Same(OptionTarget(OptionID{})))
	})

	t.Run("None matches none", func(t *testing.T) {
		assert.True(t, NoTarget.Same(NoHit.Target()))
	})
}

func TestHitResult_DecodesFromClient(t *testing.T) {
	t.Run("Option hit", func(t *testing.T) {
		var hit HitResult

		err := json.Unmarshal([]byte(`{"kind":"option","option":{"index":4}}`), &hit)

		require.NoError(t, err)
		assert.Equal(t, KindOption, hit.Kind)
		assert.Equal(t, 4, hit.Option.Index)
		assert.Nil(t, hit.Object)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		var hit HitResult

		err := json.Unmarshal([]byte(`{"kind":"tile"}`), &hit)

		require.Error(t, err)
	})
}
