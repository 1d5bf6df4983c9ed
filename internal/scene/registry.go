package scene

import (
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
)

// Registry is the flat set of interactive objects built by the scene layer.
// The interaction engine reads it every frame and retires consumed options
// through it.
type Registry struct {
	mu      sync.RWMutex
	objects []*entity.InteractiveObject
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds obj. Registering the same object twice is a no-op.
func (that *Registry) Register(obj *entity.InteractiveObject) {
	if obj == nil {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if slices.Contains(that.objects, obj) {
		return
	}
	that.objects = append(that.objects, obj)
}

func (that *Registry) Unregister(obj *entity.InteractiveObject) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.objects = slices.DeleteFunc(that.objects, func(o *entity.InteractiveObject) bool {
		return o == obj
	})
}

// UnregisterKind drops every object of kind, e.g. when a new palette replaces the old one.
func (that *Registry) UnregisterKind(kind entity.Kind) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.objects = slices.DeleteFunc(that.objects, func(o *entity.InteractiveObject) bool {
		return o.Kind == kind
	})
}

// QueryByKind returns the visible and enabled objects of kind in registration order.
func (that *Registry) QueryByKind(kind entity.Kind) []*entity.InteractiveObject {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var out []*entity.InteractiveObject
	for _, obj := range that.objects {
		if obj.Kind == kind && obj.Interactive() {
			out = append(out, obj)
		}
	}

	return out
}

// All returns every registered object regardless of state.
func (that *Registry) All() []*entity.InteractiveObject {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return slices.Clone(that.objects)
}

func (that *Registry) Cell(cell entity.CellID) (*entity.InteractiveObject, bool) {
	return that.find(func(o *entity.InteractiveObject) bool {
		return o.Kind == entity.KindCell && o.Cell == cell
	})
}

func (that *Registry) Option(index int) (*entity.InteractiveObject, bool) {
	return that.find(func(o *entity.InteractiveObject) bool {
		return o.Kind == entity.KindOption && o.Option.Index == index
	})
}

// Retire disables and hides the option at index. It reports false when no
// such option exists or it was already retired.
func (that *Registry) Retire(index int) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, obj := range that.objects {
		if obj.Kind == entity.KindOption && obj.Option.Index == index {
			if !obj.Enabled {
				return false
			}
			obj.Enabled = false
			obj.Visible = false

			return true
		}
	}

	return false
}

// Reset makes every object visible and enabled again.
func (that *Registry) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, obj := range that.objects {
		obj.Enabled = true
		obj.Visible = true
	}
}

// Update runs fn on every object of kind under the write lock, so transform
// updates never interleave with a query.
func (that *Registry) Update(kind entity.Kind, fn func(obj *entity.InteractiveObject)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, obj := range that.objects {
		if obj.Kind == kind {
			fn(obj)
		}
	}
}

func (that *Registry) find(match func(o *entity.InteractiveObject) bool) (*entity.InteractiveObject, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, obj := range that.objects {
		if match(obj) {
			return obj, true
		}
	}

	return nil, false
}
