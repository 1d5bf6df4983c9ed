package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// Kind discriminates interactive objects and hits.
type Kind int

const (
	KindNone Kind = iota
	KindCell
	KindOption
)

func (that Kind) String() string {
	switch that {
	case KindCell:
		return "cell"
	case KindOption:
		return "option"
	default:
		return "none"
	}
}

func (that Kind) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cell":
		*that = KindCell
	case "option":
		*that = KindOption
	case "none", "":
		*that = KindNone
	default:
		return fmt.Errorf("unknown kind %q", text)
	}

	return nil
}

// OptionID identifies one palette tile. Text never changes after generation.
type OptionID struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (that OptionID) String() string {
	return fmt.Sprintf("%d:%q", that.Index, that.Text)
}

// Size is the extent of an object's surface in its local XY plane.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InteractiveObject is a hit-testable surface owned by the scene builder.
// Exactly one of Cell or Option is meaningful, selected by Kind.
type InteractiveObject struct {
	Kind      Kind            `json:"kind"`
	Cell      CellID          `json:"cell"`
	Option    OptionID        `json:"option"`
	Transform vmath.Transform `json:"transform"`
	Size      Size            `json:"size"`
	Visible   bool            `json:"visible"`
	Enabled   bool            `json:"enabled"`
}

func NewCellObject(cell CellID, transform vmath.Transform, size Size) *InteractiveObject {
	return &InteractiveObject{
		Kind:      KindCell,
		Cell:      cell,
		Transform: transform,
		Size:      size,
		Visible:   true,
		Enabled:   true,
	}
}

func NewOptionObject(option OptionID, transform vmath.Transform, size Size) *InteractiveObject {
	return &InteractiveObject{
		Kind:      KindOption,
		Option:    option,
		Transform: transform,
		Size:      size,
		Visible:   true,
		Enabled:   true,
	}
}

// Interactive reports whether the object takes part in hit-testing.
func (that *InteractiveObject) Interactive() bool {
	return that.Visible && that.Enabled
}

func (that *InteractiveObject) String() string {
	switch that.Kind {
	case KindCell:
		return "cell(" + that.Cell.String() + ")"
	case KindOption:
		return "option(" + that.Option.String() + ")"
	default:
		return "none"
	}
}
