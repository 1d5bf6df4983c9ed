package interaction

import (
	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// ObjectSource yields the hit-testable objects of one kind.
type ObjectSource interface {
	QueryByKind(kind entity.Kind) []*entity.InteractiveObject
}

// HitTest casts ray against cells and options independently. A cell hit
// always wins over an option hit: the two groups never overlap on screen, so
// priority is fixed by kind instead of compared by distance.
func HitTest(ray vmath.Ray, source ObjectSource) entity.HitResult {
	if hit, ok := nearest(ray, source.QueryByKind(entity.KindCell)); ok {
		return hit
	}

	if hit, ok := nearest(ray, source.QueryByKind(entity.KindOption)); ok {
		return hit
	}

	return entity.NoHit
}

// nearest keeps the first object on ties, so registration order breaks them.
func nearest(ray vmath.Ray, objects []*entity.InteractiveObject) (entity.HitResult, bool) {
	var (
		best     *entity.InteractiveObject
		bestDist float64
	)

	for _, obj := range objects {
		dist, ok := ray.IntersectRect(obj.Transform, obj.Size.Width, obj.Size.Height)
		if !ok {
			continue
		}

		if best == nil || dist < bestDist {
			best, bestDist = obj, dist
		}
	}

	if best == nil {
		return entity.NoHit, false
	}

	return entity.HitOf(best, bestDist), true
}
