package interaction

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Interaction is the kind-agnostic view of a Mapping, used by collections
// holding mappings of different kinds.
//
// Changed is a read-to-clear query: it reports whether the value was written
// with a different reading since the previous Changed call, and resets that
// state. Calling it twice after one write yields true, then false. Use Peek to
// inspect the flag without consuming it.
//
// The kind-specific accessors (Bool, SetFloat, ...) only operate on a mapping
// of the matching kind. On any other mapping they log a warning and do
// nothing; getters then return the accessor kind's zero value.
type Interaction interface {
	ID() uint32
	Kind() Kind
	Input() PhysicalInput
	Action() Action
	SetAction(a Action)

	Changed() bool
	Peek() bool

	// Value returns the current reading boxed in an interface.
	Value() any
	// SetValue writes v if its dynamic type matches the mapping's payload.
	SetValue(v any) error

	Raw() any
	SetRaw(v any)
	Bool() bool
	SetBool(v bool)
	Float() float64
	SetFloat(v float64)
	Vector2() mgl64.Vec2
	SetVector2(v mgl64.Vec2)
	Position() mgl64.Vec3
	SetPosition(v mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(v mgl64.Quat)
	Pose() Pose
	SetPose(v Pose)
}

// Mapping links one physical input to a logical action and stores its
// latest reading of type T. Use the New* constructors; a zero Mapping is a
// KindNone mapping that holds nothing.
type Mapping[T any] struct {
	id     uint32
	kind   Kind
	input  PhysicalInput
	action Action
	cell   Cell[T]
	logger *slog.Logger
}

var _ Interaction = (*Mapping[bool])(nil)

type options struct {
	logger *slog.Logger
}

// Option configures a Mapping.
type Option func(*options)

// WithLogger sets the logger receiving kind mismatch diagnostics.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newMapping[T any](id uint32, kind Kind, input PhysicalInput, action Action, cell Cell[T], opts []Option) *Mapping[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Mapping[T]{
		id:     id,
		kind:   kind,
		input:  input,
		action: action,
		cell:   cell,
		logger: o.logger,
	}
}

// NewNone returns a mapping that carries no payload. Every accessor on it is
// a mismatch.
func NewNone(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[any] {
	return newMapping(id, KindNone, input, action, NewCellFunc[any](nil, identical), opts)
}

// NewRaw returns a mapping holding an opaque payload, initially nil.
func NewRaw(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[any] {
	return newMapping(id, KindRaw, input, action, NewCellFunc[any](nil, identical), opts)
}

func NewDigital(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[bool] {
	return newMapping(id, KindDigital, input, action, NewCell(false), opts)
}

func NewSingleAxis(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[float64] {
	return newMapping(id, KindSingleAxis, input, action, NewCellFunc(0.0, sameFloat), opts)
}

func NewDualAxis(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[mgl64.Vec2] {
	return newMapping(id, KindDualAxis, input, action, NewCellFunc(mgl64.Vec2{}, sameVec2), opts)
}

func NewPosition(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[mgl64.Vec3] {
	return newMapping(id, KindThreeDofPosition, input, action, NewCellFunc(mgl64.Vec3{}, sameVec3), opts)
}

func NewRotation(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[mgl64.Quat] {
	return newMapping(id, KindThreeDofRotation, input, action, NewCellFunc(mgl64.QuatIdent(), sameQuat), opts)
}

func NewSixDof(id uint32, input PhysicalInput, action Action, opts ...Option) *Mapping[Pose] {
	return newMapping(id, KindSixDof, input, action, NewCellFunc(PoseZeroIdentity, samePose), opts)
}

// New builds a mapping whose payload type is chosen by kind. It is meant for
// configuration-driven setup; a kind outside the closed set is rejected.
func New(id uint32, kind Kind, input PhysicalInput, action Action, opts ...Option) (Interaction, error) {
	switch kind {
	case KindNone:
		return NewNone(id, input, action, opts...), nil
	case KindRaw:
		return NewRaw(id, input, action, opts...), nil
	case KindDigital:
		return NewDigital(id, input, action, opts...), nil
	case KindSingleAxis:
		return NewSingleAxis(id, input, action, opts...), nil
	case KindDualAxis:
		return NewDualAxis(id, input, action, opts...), nil
	case KindThreeDofPosition:
		return NewPosition(id, input, action, opts...), nil
	case KindThreeDofRotation:
		return NewRotation(id, input, action, opts...), nil
	case KindSixDof:
		return NewSixDof(id, input, action, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}

func (m *Mapping[T]) ID() uint32           { return m.id }
func (m *Mapping[T]) Kind() Kind           { return m.kind }
func (m *Mapping[T]) Input() PhysicalInput { return m.input }
func (m *Mapping[T]) Action() Action       { return m.action }
func (m *Mapping[T]) SetAction(a Action)   { m.action = a }

// Changed reports whether the reading changed since the last call and clears
// the flag.
func (m *Mapping[T]) Changed() bool { return m.cell.Changed() }

func (m *Mapping[T]) Peek() bool { return m.cell.Peek() }

// Get returns the current reading.
func (m *Mapping[T]) Get() T { return m.cell.Get() }

// Set writes a reading. On a KindNone mapping it is a mismatch.
func (m *Mapping[T]) Set(v T) {
	if m.kind == KindNone {
		m.mismatch("Set", KindNone)
		return
	}
	m.cell.Set(v)
}

func (m *Mapping[T]) Value() any {
	if m.kind == KindNone {
		return nil
	}
	return m.cell.Get()
}

func (m *Mapping[T]) SetValue(v any) error {
	if m.kind == KindNone {
		return fmt.Errorf("%w: mapping %d (%s) holds no value", ErrKindMismatch, m.id, m.input)
	}
	t, ok := v.(T)
	if !ok && v != nil {
		return fmt.Errorf("%w: mapping %d (%s) is %s, got %T", ErrKindMismatch, m.id, m.input, m.kind, v)
	}
	if !ok {
		// nil is only a valid reading for raw mappings
		if m.kind != KindRaw {
			return fmt.Errorf("%w: mapping %d (%s) is %s, got nil", ErrKindMismatch, m.id, m.input, m.kind)
		}
		var zero T
		t = zero
	}
	m.cell.Set(t)
	return nil
}

func (m *Mapping[T]) String() string {
	return fmt.Sprintf("%d:%s:%s:%s", m.id, m.input, m.kind, m.action)
}

func (m *Mapping[T]) mismatch(accessor string, want Kind) {
	logger := m.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("interaction accessor does not match mapping kind",
		"mapping", m.id,
		"input", m.input.String(),
		"kind", m.kind.String(),
		"accessor", accessor,
		"accessorKind", want.String(),
	)
}
