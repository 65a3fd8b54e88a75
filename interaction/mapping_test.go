package interaction_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xrinput/interaction"
	th "github.com/Alia5/xrinput/internal/testing"
)

var selectAction = interaction.Action{ID: 1, Description: "Select"}

func TestMapping_InitialState(t *testing.T) {
	tests := []struct {
		kind interaction.Kind
		want any
	}{
		{kind: interaction.KindNone, want: nil},
		{kind: interaction.KindRaw, want: nil},
		{kind: interaction.KindDigital, want: false},
		{kind: interaction.KindSingleAxis, want: 0.0},
		{kind: interaction.KindDualAxis, want: mgl64.Vec2{}},
		{kind: interaction.KindThreeDofPosition, want: mgl64.Vec3{}},
		{kind: interaction.KindThreeDofRotation, want: mgl64.QuatIdent()},
		{kind: interaction.KindSixDof, want: interaction.PoseZeroIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, err := interaction.New(7, tt.kind, interaction.InputNone, selectAction)
			require.NoError(t, err)
			assert.Equal(t, uint32(7), m.ID())
			assert.Equal(t, tt.kind, m.Kind())
			assert.Equal(t, tt.want, m.Value())
			assert.False(t, m.Peek())
			assert.False(t, m.Changed())
		})
	}
}

func TestMapping_WriteThenFirstReadTrue(t *testing.T) {
	tests := []struct {
		kind interaction.Kind
		a, b any
	}{
		{kind: interaction.KindRaw, a: "left", b: "right"},
		{kind: interaction.KindDigital, a: true, b: false},
		{kind: interaction.KindSingleAxis, a: 0.25, b: 0.75},
		{kind: interaction.KindDualAxis, a: mgl64.Vec2{0.5, -0.5}, b: mgl64.Vec2{-1, 1}},
		{kind: interaction.KindThreeDofPosition, a: mgl64.Vec3{1, 2, 3}, b: mgl64.Vec3{3, 2, 1}},
		{kind: interaction.KindThreeDofRotation, a: mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0}), b: mgl64.QuatRotate(2, mgl64.Vec3{1, 0, 0})},
		{kind: interaction.KindSixDof,
			a: interaction.Pose{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent()},
			b: interaction.Pose{Position: mgl64.Vec3{1, 1, 1}, Rotation: mgl64.QuatIdent()}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, err := interaction.New(1, tt.kind, interaction.InputNone, selectAction)
			require.NoError(t, err)

			require.NoError(t, m.SetValue(tt.a))
			assert.True(t, m.Changed())
			assert.False(t, m.Changed())
			assert.Equal(t, tt.a, m.Value())

			require.NoError(t, m.SetValue(tt.a))
			assert.False(t, m.Changed(), "same value written twice")

			require.NoError(t, m.SetValue(tt.b))
			assert.True(t, m.Changed())
			assert.Equal(t, tt.b, m.Value())
		})
	}
}

func TestMapping_SixDofScenario(t *testing.T) {
	m := interaction.NewSixDof(1, interaction.InputSpatialPointer, selectAction)
	assert.Equal(t, interaction.PoseZeroIdentity, m.Pose())

	up := interaction.Pose{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent()}
	m.SetPose(up)
	assert.True(t, m.Changed())
	assert.Equal(t, up, m.Pose())
	assert.Equal(t, up, m.Get())

	m.SetPose(up)
	assert.False(t, m.Changed())

	m.SetPose(interaction.Pose{
		Position: mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.Quat{W: 45, V: mgl64.Vec3{45, 45, 45}},
	})
	assert.True(t, m.Changed())
}

func TestMapping_SixDofExposesParts(t *testing.T) {
	logger, buf := th.NewLogger(t)
	m := interaction.NewSixDof(1, interaction.InputSpatialGrip, selectAction, interaction.WithLogger(logger))
	rot := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 0, 1})
	m.SetPose(interaction.Pose{Position: mgl64.Vec3{4, 5, 6}, Rotation: rot})

	assert.Equal(t, mgl64.Vec3{4, 5, 6}, m.Position())
	assert.True(t, rot.ApproxEqual(m.Rotation()))
	assert.Empty(t, buf.String())
}

// driveBoth writes values to one mapping through Set and SetValue and to a
// twin through its kind-specific setter, checking both report the same
// Get and Changed sequence.
func driveBoth[T any](t *testing.T, generic, specific *interaction.Mapping[T], set func(T), get func() T, values []T) {
	t.Helper()
	for i, v := range values {
		if i%2 == 0 {
			generic.Set(v)
		} else {
			require.NoError(t, interaction.SetValue(generic, v))
		}
		set(v)

		got, err := interaction.GetValue[T](generic)
		require.NoError(t, err)
		assert.Equal(t, generic.Get(), got, "step %d", i)
		assert.Equal(t, got, get(), "step %d", i)
		assert.Equal(t, generic.Changed(), specific.Changed(), "step %d", i)
		assert.False(t, generic.Changed(), "step %d", i)
		assert.False(t, specific.Changed(), "step %d", i)
	}
}

func TestMapping_GenericAndSpecificAgree(t *testing.T) {
	in := interaction.InputNone
	payload := []int{1, 2}
	pose := interaction.Pose{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent()}

	t.Run("raw", func(t *testing.T) {
		s := interaction.NewRaw(2, in, selectAction)
		driveBoth(t, interaction.NewRaw(1, in, selectAction), s, s.SetRaw, s.Raw,
			[]any{"a", "a", 3, nil, payload, payload, payload[:1]})
	})
	t.Run("digital", func(t *testing.T) {
		s := interaction.NewDigital(2, in, selectAction)
		driveBoth(t, interaction.NewDigital(1, in, selectAction), s, s.SetBool, s.Bool,
			[]bool{true, true, false, false, true, false})
	})
	t.Run("singleAxis", func(t *testing.T) {
		s := interaction.NewSingleAxis(2, in, selectAction)
		driveBoth(t, interaction.NewSingleAxis(1, in, selectAction), s, s.SetFloat, s.Float,
			[]float64{0.1, 0.1, 0.9, 0, 0})
	})
	t.Run("dualAxis", func(t *testing.T) {
		s := interaction.NewDualAxis(2, in, selectAction)
		driveBoth(t, interaction.NewDualAxis(1, in, selectAction), s, s.SetVector2, s.Vector2,
			[]mgl64.Vec2{{1, 0}, {1, 0}, {0, -1}, {}})
	})
	t.Run("threeDofPosition", func(t *testing.T) {
		s := interaction.NewPosition(2, in, selectAction)
		driveBoth(t, interaction.NewPosition(1, in, selectAction), s, s.SetPosition, s.Position,
			[]mgl64.Vec3{{0, 1, 0}, {0, 1, 0}, {1, 1, 1}})
	})
	t.Run("threeDofRotation", func(t *testing.T) {
		s := interaction.NewRotation(2, in, selectAction)
		driveBoth(t, interaction.NewRotation(1, in, selectAction), s, s.SetRotation, s.Rotation,
			[]mgl64.Quat{mgl64.QuatIdent(), mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0}), mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})})
	})
	t.Run("sixDof", func(t *testing.T) {
		s := interaction.NewSixDof(2, in, selectAction)
		driveBoth(t, interaction.NewSixDof(1, in, selectAction), s, s.SetPose, s.Pose,
			[]interaction.Pose{pose, pose, {Position: mgl64.Vec3{1, 1, 1}, Rotation: mgl64.Quat{W: 45, V: mgl64.Vec3{45, 45, 45}}}})
	})
}

func TestMapping_SixDofWritesParts(t *testing.T) {
	logger, buf := th.NewLogger(t)
	m := interaction.NewSixDof(1, interaction.InputSpatialPointer, selectAction, interaction.WithLogger(logger))
	rot := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 0, 1})

	m.SetPosition(mgl64.Vec3{1, 2, 3})
	assert.True(t, m.Changed())
	assert.Equal(t, interaction.Pose{Position: mgl64.Vec3{1, 2, 3}, Rotation: mgl64.QuatIdent()}, m.Pose())

	m.SetRotation(rot)
	assert.True(t, m.Changed())
	assert.Equal(t, interaction.Pose{Position: mgl64.Vec3{1, 2, 3}, Rotation: rot}, m.Pose())

	m.SetPosition(mgl64.Vec3{1, 2, 3})
	assert.False(t, m.Changed())
	assert.Empty(t, buf.String())
}

func TestMapping_NaNReadingIsNotAChange(t *testing.T) {
	nan := math.NaN()

	axis := interaction.NewSingleAxis(1, interaction.InputTrigger, selectAction)
	axis.SetFloat(nan)
	assert.True(t, axis.Changed())
	axis.SetFloat(nan)
	assert.False(t, axis.Changed())
	axis.SetFloat(0.5)
	assert.True(t, axis.Changed())

	stick := interaction.NewDualAxis(2, interaction.InputThumbStick, selectAction)
	stick.SetVector2(mgl64.Vec2{nan, 1})
	assert.True(t, stick.Changed())
	stick.SetVector2(mgl64.Vec2{nan, 1})
	assert.False(t, stick.Changed())

	grip := interaction.NewSixDof(3, interaction.InputSpatialGrip, selectAction)
	p := interaction.Pose{Position: mgl64.Vec3{nan, 0, 0}, Rotation: mgl64.QuatIdent()}
	grip.SetPose(p)
	assert.True(t, grip.Changed())
	grip.SetPose(p)
	assert.False(t, grip.Changed())
}

func TestMapping_ZeroValue(t *testing.T) {
	var m interaction.Mapping[float64]
	assert.NotPanics(t, func() {
		m.Set(1)
		m.SetFloat(1)
		_ = m.Bool()
	})
	assert.Equal(t, interaction.KindNone, m.Kind())
	assert.Nil(t, m.Value())
	assert.False(t, m.Changed())
}

func TestMapping_KindMismatchIsDiagnosedNoop(t *testing.T) {
	logger, buf := th.NewLogger(t)
	m := interaction.NewDigital(4, interaction.InputGripPress, selectAction, interaction.WithLogger(logger))

	m.SetFloat(0.5)
	m.SetVector2(mgl64.Vec2{1, 1})
	m.SetRaw("x")
	assert.False(t, m.Changed())
	assert.False(t, m.Bool())
	assert.Equal(t, 0.0, m.Float())
	assert.Equal(t, mgl64.QuatIdent(), m.Rotation())

	out := buf.String()
	assert.Equal(t, 5, buf.Count("does not match mapping kind"))
	assert.Contains(t, out, "accessor=SetFloat")
	assert.Contains(t, out, "kind=digital")
	assert.Contains(t, out, "input=gripPress")

	m.SetBool(true)
	assert.True(t, m.Changed())
}

func TestMapping_NoneHoldsNothing(t *testing.T) {
	logger, buf := th.NewLogger(t)
	m := interaction.NewNone(9, interaction.InputNone, interaction.ActionNone, interaction.WithLogger(logger))

	m.SetRaw(1)
	m.Set(2)
	assert.Nil(t, m.Value())
	assert.False(t, m.Changed())
	assert.ErrorIs(t, m.SetValue(3), interaction.ErrKindMismatch)
	assert.ErrorIs(t, interaction.SetValue[any](m, 3), interaction.ErrKindMismatch)
	assert.Equal(t, 2, buf.Count("does not match mapping kind"))
}

func TestMapping_SetValueTypeMismatch(t *testing.T) {
	m := interaction.NewDualAxis(5, interaction.InputThumbStick, selectAction)

	err := m.SetValue(mgl64.Vec3{1, 2, 3})
	assert.ErrorIs(t, err, interaction.ErrKindMismatch)
	assert.ErrorIs(t, m.SetValue(nil), interaction.ErrKindMismatch)
	assert.False(t, m.Changed())

	_, err = interaction.GetValue[bool](m)
	assert.ErrorIs(t, err, interaction.ErrKindMismatch)
	assert.ErrorIs(t, interaction.SetValue(m, 1.0), interaction.ErrKindMismatch)

	_, err = interaction.GetValue[int](nil)
	assert.True(t, errors.Is(err, interaction.ErrNilInteraction))
}

func TestMapping_RawAcceptsNil(t *testing.T) {
	m := interaction.NewRaw(1, interaction.InputNone, interaction.ActionNone)
	require.NoError(t, m.SetValue(42))
	assert.True(t, m.Changed())
	require.NoError(t, m.SetValue(nil))
	assert.True(t, m.Changed())
	assert.Nil(t, m.Raw())
}

func TestMapping_RebindAction(t *testing.T) {
	m := interaction.NewDualAxis(6, interaction.InputThumbStick, interaction.Action{ID: 5, Description: "Walk"})
	m.SetAction(interaction.Action{ID: 6, Description: "Look"})
	assert.Equal(t, uint32(6), m.Action().ID)
	assert.Equal(t, interaction.InputThumbStick, m.Input(), "input stays fixed")
	assert.Equal(t, "6:thumbStick:dualAxis:Look(6)", m.String())
}

func TestNew_UnsupportedKind(t *testing.T) {
	_, err := interaction.New(1, interaction.Kind(42), interaction.InputNone, interaction.ActionNone)
	assert.ErrorIs(t, err, interaction.ErrUnsupportedKind)
}

func TestAs(t *testing.T) {
	var i interaction.Interaction = interaction.NewPosition(1, interaction.InputGripPosition, interaction.ActionNone)

	p, ok := interaction.As[mgl64.Vec3](i)
	require.True(t, ok)
	p.Set(mgl64.Vec3{0, 0, 1})
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, i.Position())
	assert.True(t, i.Changed(), "typed and interface views share one flag")

	_, ok = interaction.As[mgl64.Quat](i)
	assert.False(t, ok)
}

func BenchmarkMapping_SetFloat(b *testing.B) {
	var m interaction.Interaction = interaction.NewSingleAxis(1, interaction.InputTrigger, interaction.ActionNone)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.SetFloat(float64(i & 1))
		_ = m.Changed()
	}
}
