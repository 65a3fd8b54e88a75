package interaction

import (
	"fmt"
	"reflect"
)

// As returns i as a *Mapping[T] when its payload type is T.
func As[T any](i Interaction) (*Mapping[T], bool) {
	m, ok := i.(*Mapping[T])
	return m, ok
}

// GetValue reads the current value of i as a T.
func GetValue[T any](i Interaction) (T, error) {
	m, ok := As[T](i)
	if !ok || m.kind == KindNone {
		var zero T
		return zero, mismatchError[T](i)
	}
	return m.Get(), nil
}

// SetValue writes v to i without boxing it, provided i holds T readings.
func SetValue[T any](i Interaction, v T) error {
	m, ok := As[T](i)
	if !ok || m.kind == KindNone {
		return mismatchError[T](i)
	}
	m.cell.Set(v)
	return nil
}

func mismatchError[T any](i Interaction) error {
	if i == nil {
		return ErrNilInteraction
	}
	return fmt.Errorf("%w: mapping %d (%s) is %s, not %s", ErrKindMismatch, i.ID(), i.Input(), i.Kind(), reflect.TypeFor[T]())
}
