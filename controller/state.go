package controller

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/xrinput/interaction"
)

// SourceStateSize is the size of an encoded SourceState.
const SourceStateSize = 2 + 8 + 4*8 + 2*7*8

// Flag bits of the encoded SourceState.
const (
	FlagTracked uint16 = 1 << iota
	FlagSelectPressed
	FlagGrasped
	FlagMenuPressed
	FlagThumbstickPressed
	FlagTouchpadTouched
	FlagTouchpadPressed
)

// SourceState is one reading of a motion controller, taken once per tick.
//
// Wire format (little-endian, fixed 154 bytes):
//
//	0-1:     flags (u16, see Flag* constants)
//	2-9:     select pressed amount (f64, 0..1)
//	10-25:   thumbstick x, y (f64)
//	26-41:   touchpad x, y (f64)
//	42-97:   pointer pose: position x, y, z; rotation w, x, y, z (f64)
//	98-153:  grip pose, same layout
type SourceState struct {
	Tracked bool

	SelectPressed       bool
	SelectPressedAmount float64

	Grasped     bool
	MenuPressed bool

	ThumbstickPressed  bool
	ThumbstickPosition mgl64.Vec2

	TouchpadTouched  bool
	TouchpadPressed  bool
	TouchpadPosition mgl64.Vec2

	PointerPose interaction.Pose
	GripPose    interaction.Pose
}

// NewSourceState returns an untracked state with identity poses.
func NewSourceState() SourceState {
	return SourceState{
		PointerPose: interaction.PoseZeroIdentity,
		GripPose:    interaction.PoseZeroIdentity,
	}
}

func (s *SourceState) flags() uint16 {
	var f uint16
	set := func(b bool, bit uint16) {
		if b {
			f |= bit
		}
	}
	set(s.Tracked, FlagTracked)
	set(s.SelectPressed, FlagSelectPressed)
	set(s.Grasped, FlagGrasped)
	set(s.MenuPressed, FlagMenuPressed)
	set(s.ThumbstickPressed, FlagThumbstickPressed)
	set(s.TouchpadTouched, FlagTouchpadTouched)
	set(s.TouchpadPressed, FlagTouchpadPressed)
	return f
}

// MarshalBinary encodes the state to SourceStateSize bytes.
func (s *SourceState) MarshalBinary() ([]byte, error) {
	b := make([]byte, SourceStateSize)
	binary.LittleEndian.PutUint16(b[0:2], s.flags())
	o := 2
	put := func(vs ...float64) {
		for _, v := range vs {
			binary.LittleEndian.PutUint64(b[o:o+8], math.Float64bits(v))
			o += 8
		}
	}
	put(s.SelectPressedAmount)
	put(s.ThumbstickPosition[:]...)
	put(s.TouchpadPosition[:]...)
	putPose := func(p interaction.Pose) {
		put(p.Position[:]...)
		put(p.Rotation.W)
		put(p.Rotation.V[:]...)
	}
	putPose(s.PointerPose)
	putPose(s.GripPose)
	return b, nil
}

// UnmarshalBinary decodes SourceStateSize bytes into the state.
func (s *SourceState) UnmarshalBinary(data []byte) error {
	if len(data) < SourceStateSize {
		return io.ErrUnexpectedEOF
	}
	f := binary.LittleEndian.Uint16(data[0:2])
	s.Tracked = f&FlagTracked != 0
	s.SelectPressed = f&FlagSelectPressed != 0
	s.Grasped = f&FlagGrasped != 0
	s.MenuPressed = f&FlagMenuPressed != 0
	s.ThumbstickPressed = f&FlagThumbstickPressed != 0
	s.TouchpadTouched = f&FlagTouchpadTouched != 0
	s.TouchpadPressed = f&FlagTouchpadPressed != 0

	o := 2
	get := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(data[o : o+8]))
		o += 8
		return v
	}
	s.SelectPressedAmount = get()
	s.ThumbstickPosition = mgl64.Vec2{get(), get()}
	s.TouchpadPosition = mgl64.Vec2{get(), get()}
	getPose := func() interaction.Pose {
		var p interaction.Pose
		p.Position = mgl64.Vec3{get(), get(), get()}
		p.Rotation.W = get()
		p.Rotation.V = mgl64.Vec3{get(), get(), get()}
		return p
	}
	s.PointerPose = getPose()
	s.GripPose = getPose()
	return nil
}
