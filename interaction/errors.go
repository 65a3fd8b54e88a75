package interaction

import "errors"

var (
	// ErrUnsupportedKind is returned when a kind outside the closed set is
	// used to construct or dispatch a mapping.
	ErrUnsupportedKind = errors.New("unsupported interaction kind")
	// ErrKindMismatch is returned by the generic accessors when the value type
	// does not match the mapping's kind.
	ErrKindMismatch = errors.New("interaction kind mismatch")
	// ErrUnknownInput is returned when a physical input name cannot be resolved.
	ErrUnknownInput = errors.New("unknown physical input")

	ErrInputNotFound   = errors.New("physical input not found")
	ErrIndexOutOfRange = errors.New("interaction index out of range")
	ErrDuplicateInput  = errors.New("duplicate physical input")
	ErrNilInteraction  = errors.New("nil interaction")
)
