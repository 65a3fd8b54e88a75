package interaction

import (
	"fmt"
	"iter"
)

// Collection holds the mappings of one controller in a fixed order and
// indexes them by physical input. Mappings bound to InputNone are only
// reachable by index.
type Collection struct {
	items []Interaction
	keys  map[PhysicalInput]int
}

// NewCollection builds a collection over items, keeping their order.
func NewCollection(items ...Interaction) (*Collection, error) {
	c := &Collection{
		items: make([]Interaction, 0, len(items)),
		keys:  make(map[PhysicalInput]int, len(items)),
	}
	for i, it := range items {
		if it == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilInteraction, i)
		}
		if in := it.Input(); in != InputNone {
			if prev, dup := c.keys[in]; dup {
				return nil, fmt.Errorf("%w: %s at index %d and %d", ErrDuplicateInput, in, prev, i)
			}
			c.keys[in] = i
		}
		c.items = append(c.items, it)
	}
	return c, nil
}

func (c *Collection) Len() int { return len(c.items) }

// At returns the mapping at index i.
func (c *Collection) At(i int) (Interaction, error) {
	if i < 0 || i >= len(c.items) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(c.items))
	}
	return c.items[i], nil
}

// Get returns the mapping bound to key.
func (c *Collection) Get(key PhysicalInput) (Interaction, error) {
	i, ok := c.keys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, key)
	}
	return c.items[i], nil
}

// IndexOf returns the index of the mapping bound to key.
func (c *Collection) IndexOf(key PhysicalInput) (int, bool) {
	i, ok := c.keys[key]
	return i, ok
}

// All iterates over the mappings in index order.
func (c *Collection) All() iter.Seq2[int, Interaction] {
	return func(yield func(int, Interaction) bool) {
		for i, it := range c.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// SetByKey writes v to the mapping bound to key.
func (c *Collection) SetByKey(key PhysicalInput, v any) error {
	m, err := c.Get(key)
	if err != nil {
		return err
	}
	return m.SetValue(v)
}

// SetByIndex writes v to the mapping at index i.
func (c *Collection) SetByIndex(i int, v any) error {
	m, err := c.At(i)
	if err != nil {
		return err
	}
	return m.SetValue(v)
}

// ChangedByKey consumes the changed flag of the mapping bound to key.
func (c *Collection) ChangedByKey(key PhysicalInput) (bool, error) {
	m, err := c.Get(key)
	if err != nil {
		return false, err
	}
	return m.Changed(), nil
}

// ChangedByIndex consumes the changed flag of the mapping at index i.
func (c *Collection) ChangedByIndex(i int) (bool, error) {
	m, err := c.At(i)
	if err != nil {
		return false, err
	}
	return m.Changed(), nil
}

// SetKey is the typed form of SetByKey.
func SetKey[T any](c *Collection, key PhysicalInput, v T) error {
	m, err := c.Get(key)
	if err != nil {
		return err
	}
	return SetValue(m, v)
}

// SetIndex is the typed form of SetByIndex.
func SetIndex[T any](c *Collection, i int, v T) error {
	m, err := c.At(i)
	if err != nil {
		return err
	}
	return SetValue(m, v)
}
