package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
)

const (
	GridSize   = 3
	BoardCells = GridSize * GridSize
)

// CellID addresses one board slot.
type CellID struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCellID(row, col int) (CellID, error) {
	id := CellID{Row: row, Col: col}
	if !id.Valid() {
		return CellID{}, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	return id, nil
}

// CellAt is the cell for a row-major board index.
func CellAt(index int) CellID {
	return CellID{Row: index / GridSize, Col: index % GridSize}
}

func (that CellID) Valid() bool {
	return that.Row >= 0 && that.Row < GridSize && that.Col >= 0 && that.Col < GridSize
}

// Index is the row-major position of the cell on the board.
func (that CellID) Index() int {
	return that.Row*GridSize + that.Col
}

func (that CellID) String() string {
	return fmt.Sprintf("%d,%d", that.Row, that.Col)
}

// Slot is the content of one cell.
type Slot struct {
	Text   string `json:"text"`
	Filled bool   `json:"filled"`
}

// Board holds the committed answers, indexed by CellID.Index.
type Board struct {
	Slots [BoardCells]Slot `json:"slots"`
}

func NewBoard() Board {
	return Board{}
}

func (that *Board) Get(cell CellID) (Slot, bool) {
	if !cell.Valid() {
		return Slot{}, false
	}

	return that.Slots[cell.Index()], true
}

// Fill writes text into cell and returns the previous slot. A filled cell is
// overwritten.
func (that *Board) Fill(cell CellID, text string) (Slot, error) {
	if !cell.Valid() {
		return Slot{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, cell)
	}

	prev := that.Slots[cell.Index()]
	that.Slots[cell.Index()] = Slot{Text: text, Filled: true}

	return prev, nil
}

func (that *Board) IsEmpty(cell CellID) bool {
	slot, ok := that.Get(cell)
	return ok && !slot.Filled
}

// FilledCount is the number of cells holding an answer.
func (that *Board) FilledCount() int {
	count := 0
	for _, slot := range that.Slots {
		if slot.Filled {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.FilledCount() == BoardCells
}

func (that *Board) Clear() {
	that.Slots = [BoardCells]Slot{}
}
