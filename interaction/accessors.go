package interaction

import "github.com/go-gl/mathgl/mgl64"

// cellOf returns the mapping's cell as a *Cell[V] when the mapping is of kind
// want. Converting a pointer to an interface does not allocate.
func cellOf[V, T any](m *Mapping[T], want Kind, accessor string) (*Cell[V], bool) {
	if m.kind != want {
		m.mismatch(accessor, want)
		return nil, false
	}
	c, ok := any(&m.cell).(*Cell[V])
	if !ok {
		m.mismatch(accessor, want)
	}
	return c, ok
}

func (m *Mapping[T]) Raw() any {
	if c, ok := cellOf[any](m, KindRaw, "Raw"); ok {
		return c.Get()
	}
	return nil
}

func (m *Mapping[T]) SetRaw(v any) {
	if c, ok := cellOf[any](m, KindRaw, "SetRaw"); ok {
		c.Set(v)
	}
}

func (m *Mapping[T]) Bool() bool {
	if c, ok := cellOf[bool](m, KindDigital, "Bool"); ok {
		return c.Get()
	}
	return false
}

func (m *Mapping[T]) SetBool(v bool) {
	if c, ok := cellOf[bool](m, KindDigital, "SetBool"); ok {
		c.Set(v)
	}
}

func (m *Mapping[T]) Float() float64 {
	if c, ok := cellOf[float64](m, KindSingleAxis, "Float"); ok {
		return c.Get()
	}
	return 0
}

func (m *Mapping[T]) SetFloat(v float64) {
	if c, ok := cellOf[float64](m, KindSingleAxis, "SetFloat"); ok {
		c.Set(v)
	}
}

func (m *Mapping[T]) Vector2() mgl64.Vec2 {
	if c, ok := cellOf[mgl64.Vec2](m, KindDualAxis, "Vector2"); ok {
		return c.Get()
	}
	return mgl64.Vec2{}
}

func (m *Mapping[T]) SetVector2(v mgl64.Vec2) {
	if c, ok := cellOf[mgl64.Vec2](m, KindDualAxis, "SetVector2"); ok {
		c.Set(v)
	}
}

// Position returns the reading of a position mapping, or the position part
// of a six degree of freedom mapping.
func (m *Mapping[T]) Position() mgl64.Vec3 {
	if m.kind == KindSixDof {
		return m.Pose().Position
	}
	if c, ok := cellOf[mgl64.Vec3](m, KindThreeDofPosition, "Position"); ok {
		return c.Get()
	}
	return mgl64.Vec3{}
}

// SetPosition writes a position mapping, or replaces the position part of a
// six degree of freedom mapping.
func (m *Mapping[T]) SetPosition(v mgl64.Vec3) {
	if m.kind == KindSixDof {
		p := m.Pose()
		p.Position = v
		m.SetPose(p)
		return
	}
	if c, ok := cellOf[mgl64.Vec3](m, KindThreeDofPosition, "SetPosition"); ok {
		c.Set(v)
	}
}

// Rotation returns the reading of a rotation mapping, or the rotation part
// of a six degree of freedom mapping.
func (m *Mapping[T]) Rotation() mgl64.Quat {
	if m.kind == KindSixDof {
		return m.Pose().Rotation
	}
	if c, ok := cellOf[mgl64.Quat](m, KindThreeDofRotation, "Rotation"); ok {
		return c.Get()
	}
	return mgl64.QuatIdent()
}

// SetRotation writes a rotation mapping, or replaces the rotation part of a
// six degree of freedom mapping.
func (m *Mapping[T]) SetRotation(v mgl64.Quat) {
	if m.kind == KindSixDof {
		p := m.Pose()
		p.Rotation = v
		m.SetPose(p)
		return
	}
	if c, ok := cellOf[mgl64.Quat](m, KindThreeDofRotation, "SetRotation"); ok {
		c.Set(v)
	}
}

func (m *Mapping[T]) Pose() Pose {
	if c, ok := cellOf[Pose](m, KindSixDof, "Pose"); ok {
		return c.Get()
	}
	return PoseZeroIdentity
}

func (m *Mapping[T]) SetPose(v Pose) {
	if c, ok := cellOf[Pose](m, KindSixDof, "SetPose"); ok {
		c.Set(v)
	}
}
