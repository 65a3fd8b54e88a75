package controller_test

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xrinput/controller"
	"github.com/Alia5/xrinput/interaction"
)

func TestSourceState_Layout(t *testing.T) {
	s := controller.NewSourceState()
	s.Tracked = true
	s.MenuPressed = true
	s.TouchpadPressed = true
	s.SelectPressedAmount = 0.75
	s.TouchpadPosition = mgl64.Vec2{-0.5, 0.25}
	s.GripPose.Rotation = mgl64.Quat{W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}

	b, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, controller.SourceStateSize)

	f64 := func(off int) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b[off : off+8])) }

	assert.Equal(t, controller.FlagTracked|controller.FlagMenuPressed|controller.FlagTouchpadPressed, binary.LittleEndian.Uint16(b[0:2]))
	assert.Equal(t, 0.75, f64(2))
	assert.Equal(t, -0.5, f64(26))
	assert.Equal(t, 0.25, f64(34))
	assert.Equal(t, 1.0, f64(42+3*8), "pointer rotation w")
	assert.Equal(t, 0.5, f64(98+3*8), "grip rotation w")

	var out controller.SourceState
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, s, out)
}

func TestSourceState_AllFlags(t *testing.T) {
	s := controller.SourceState{
		Tracked:            true,
		SelectPressed:      true,
		Grasped:            true,
		MenuPressed:        true,
		ThumbstickPressed:  true,
		TouchpadTouched:    true,
		TouchpadPressed:    true,
		ThumbstickPosition: mgl64.Vec2{1, -1},
		PointerPose:        interaction.Pose{Position: mgl64.Vec3{1, 2, 3}, Rotation: mgl64.QuatIdent()},
	}
	b, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x7f), binary.LittleEndian.Uint16(b[0:2]))

	var out controller.SourceState
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, s, out)
}

func TestSourceState_Short(t *testing.T) {
	var s controller.SourceState
	assert.ErrorIs(t, s.UnmarshalBinary(make([]byte, controller.SourceStateSize-1)), io.ErrUnexpectedEOF)
}
