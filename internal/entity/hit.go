package entity

// HitResult is the object under the gaze ray for one frame. Kind==KindNone
// means nothing was hit.
type HitResult struct {
	Kind     Kind               `json:"kind"`
	Cell     CellID             `json:"cell"`
	Option   OptionID           `json:"option"`
	Object   *InteractiveObject `json:"-"`
	Distance float64            `json:"distance"`
}

// NoHit is the empty hit.
var NoHit = HitResult{}

func HitOf(obj *InteractiveObject, distance float64) HitResult {
	if obj == nil {
		return NoHit
	}

	return HitResult{
		Kind:     obj.Kind,
		Cell:     obj.Cell,
		Option:   obj.Option,
		Object:   obj,
		Distance: distance,
	}
}

func (that HitResult) IsNone() bool {
	return that.Kind == KindNone
}

// Target is the identity part of the hit, used as the highlight state.
func (that HitResult) Target() Target {
	switch that.Kind {
	case KindCell:
		return CellTarget(that.Cell)
	case KindOption:
		return OptionTarget(that.Option)
	default:
		return NoTarget
	}
}

// Target is the currently highlighted thing: none, one cell or one option.
type Target struct {
	Kind   Kind     `json:"kind"`
	Cell   CellID   `json:"cell"`
	Option OptionID `json:"option"`
}

var NoTarget = Target{}

func CellTarget(cell CellID) Target {
	return Target{Kind: KindCell, Cell: cell}
}

func OptionTarget(option OptionID) Target {
	return Target{Kind: KindOption, Option: option}
}

func (that Target) IsNone() bool {
	return that.Kind == KindNone
}

// Same compares identity only: option text is not part of an option's identity.
func (that Target) Same(other Target) bool {
	if that.Kind != other.Kind {
		return false
	}

	switch that.Kind {
	case KindCell:
		return that.Cell == other.Cell
	case KindOption:
		return that.Option.Index == other.Option.Index
	default:
		return true
	}
}
