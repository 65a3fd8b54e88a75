// Package interaction provides typed, change-tracked input values.
//
// A Mapping links one physical control of a controller (trigger, grip,
// thumbstick, ...) to a logical Action and stores the latest reading of that
// control. Writing a reading that differs from the stored one marks the
// mapping as changed; Changed reports that and clears it in the same call.
//
// Mappings are meant to be owned by a single goroutine driving a per-tick
// update loop. None of the types in this package are safe for concurrent use.
package interaction

import (
	"fmt"
	"strings"
)

// Kind identifies which payload a mapping holds. It is fixed for the
// lifetime of a mapping.
type Kind uint8

const (
	KindNone Kind = iota
	KindRaw
	KindDigital
	KindSingleAxis
	KindDualAxis
	KindThreeDofPosition
	KindThreeDofRotation
	KindSixDof

	kindCount
)

var kindNames = [...]string{
	KindNone:             "none",
	KindRaw:              "raw",
	KindDigital:          "digital",
	KindSingleAxis:       "singleAxis",
	KindDualAxis:         "dualAxis",
	KindThreeDofPosition: "threeDofPosition",
	KindThreeDofRotation: "threeDofRotation",
	KindSixDof:           "sixDof",
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind name. Matching is case-insensitive and ignores
// '_' and '-' separators, so "six_dof", "SixDof" and "sixdof" are equivalent.
func ParseKind(s string) (Kind, error) {
	n := normalizeName(s)
	for k, name := range kindNames {
		if normalizeName(name) == n {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
