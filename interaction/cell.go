package interaction

import (
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell stores a single reading and whether it was modified since the last
// Changed call. The zero value holds T's zero value and compares readings
// like a raw payload.
type Cell[T any] struct {
	value T
	dirty bool
	equal func(a, b T) bool
}

// NewCell returns a cell holding initial, compared with ==.
func NewCell[T comparable](initial T) Cell[T] {
	return Cell[T]{value: initial, equal: func(a, b T) bool { return a == b }}
}

// NewCellFunc returns a cell holding initial, compared with equal.
func NewCellFunc[T any](initial T, equal func(a, b T) bool) Cell[T] {
	return Cell[T]{value: initial, equal: equal}
}

// Set stores v. The cell becomes dirty only if v differs from the stored
// value; writing an equal value leaves the flag as it was.
func (c *Cell[T]) Set(v T) {
	if !c.same(c.value, v) {
		c.dirty = true
	}
	c.value = v
}

func (c *Cell[T]) same(a, b T) bool {
	if c.equal == nil {
		return identical(any(a), any(b))
	}
	return c.equal(a, b)
}

// Get returns the stored value. It does not touch the dirty flag.
func (c *Cell[T]) Get() T { return c.value }

// Changed returns the dirty flag and clears it. After a single Set, only the
// first call returns true.
func (c *Cell[T]) Changed() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Peek returns the dirty flag without clearing it.
func (c *Cell[T]) Peek() bool { return c.dirty }

// identical is the equality used for raw payloads. Comparable values are
// compared with ==; slices, maps, funcs and channels are compared by identity.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	default:
		// structs or arrays holding non-comparable fields have no identity
		return false
	}
}

// sameFloat treats NaN as equal to NaN so a stuck NaN reading is not reported
// as a change on every tick.
func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func sameVec2(a, b mgl64.Vec2) bool {
	return sameFloat(a[0], b[0]) && sameFloat(a[1], b[1])
}

func sameVec3(a, b mgl64.Vec3) bool {
	return sameFloat(a[0], b[0]) && sameFloat(a[1], b[1]) && sameFloat(a[2], b[2])
}

func sameQuat(a, b mgl64.Quat) bool {
	return sameFloat(a.W, b.W) && sameVec3(a.V, b.V)
}

func samePose(a, b Pose) bool {
	return sameVec3(a.Position, b.Position) && sameQuat(a.Rotation, b.Rotation)
}
