package controller_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xrinput/controller"
	"github.com/Alia5/xrinput/interaction"
	th "github.com/Alia5/xrinput/internal/testing"
	"github.com/Alia5/xrinput/profile"
)

func newController(t *testing.T, h interaction.Handedness) (*controller.Controller, *th.Recorder) {
	t.Helper()
	logger, _ := th.NewLogger(t)
	mappings, err := profile.WindowsMixedReality(h).Build(interaction.WithLogger(logger))
	require.NoError(t, err)
	rec := th.NewRecorder(t, 0)
	c, err := controller.New(controller.Source{ID: 1, Name: "test", Handedness: h}, mappings, rec, logger)
	require.NoError(t, err)
	return c, rec
}

func TestUpdate_IdleStateRaisesNothing(t *testing.T) {
	c, rec := newController(t, interaction.HandednessRight)

	assert.Equal(t, 0, c.Update(controller.NewSourceState()))
	assert.Empty(t, rec.Events())
	assert.Equal(t, controller.NotTracked, c.State())
}

func TestUpdate_RaisesOncePerChange(t *testing.T) {
	c, rec := newController(t, interaction.HandednessRight)

	s := controller.NewSourceState()
	s.Tracked = true
	s.MenuPressed = true
	s.SelectPressedAmount = 0.5
	s.ThumbstickPosition = mgl64.Vec2{0, 1}

	assert.Equal(t, 3, c.Update(s))
	assert.Equal(t, []string{
		"pressed Select 0.5",
		"down Menu",
		fmt.Sprintf("dualAxis Look %v", mgl64.Vec2{0, 1}),
	}, rec.Names())
	assert.Equal(t, controller.Tracked, c.State())

	rec.Reset()
	assert.Equal(t, 0, c.Update(s), "same reading twice raises nothing")
	assert.Empty(t, rec.Events())

	s.MenuPressed = false
	assert.Equal(t, 1, c.Update(s))
	assert.Equal(t, []string{"up Menu"}, rec.Names())
	assert.Equal(t, uint64(3), c.Ticks())
}

func TestUpdate_Poses(t *testing.T) {
	c, rec := newController(t, interaction.HandednessLeft)

	s := controller.NewSourceState()
	s.PointerPose = interaction.Pose{Position: mgl64.Vec3{0, 1, 0}, Rotation: mgl64.QuatIdent()}
	s.GripPose = interaction.Pose{Position: mgl64.Vec3{1, 1, 1}, Rotation: mgl64.Quat{W: 45, V: mgl64.Vec3{45, 45, 45}}}
	s.ThumbstickPosition = mgl64.Vec2{-1, 0}

	require.Equal(t, 3, c.Update(s))
	ev := rec.Events()
	assert.Equal(t, "pose", ev[0].Name)
	assert.Equal(t, "Select", ev[0].Action.Description)
	assert.Equal(t, s.PointerPose, ev[0].Value)
	assert.Equal(t, "Grip", ev[1].Action.Description)
	assert.Equal(t, "Walk", ev[2].Action.Description)
	assert.Equal(t, interaction.HandednessLeft, ev[2].Source.Handedness)

	m, err := c.Interactions().Get(interaction.InputSpatialGrip)
	require.NoError(t, err)
	assert.Equal(t, s.GripPose, m.Pose())
	assert.False(t, m.Changed(), "update consumes the change")
}

func TestUpdate_SharedStateFeedsSeveralInputs(t *testing.T) {
	c, rec := newController(t, interaction.HandednessRight)

	s := controller.NewSourceState()
	s.TouchpadTouched = true
	s.TouchpadPressed = true
	c.Update(s)
	assert.Equal(t, []string{"down Pickup", "down Pickup"}, rec.Names())
}

func TestUpdate_RawAndSplitMappings(t *testing.T) {
	logger, buf := th.NewLogger(t)
	opt := interaction.WithLogger(logger)
	mappings, err := interaction.NewCollection(
		interaction.NewRaw(1, interaction.InputTrigger, interaction.Action{ID: 1, Description: "Any"}, opt),
		interaction.NewPosition(2, interaction.InputPointerPosition, interaction.Action{ID: 2, Description: "Aim"}, opt),
		interaction.NewRotation(3, interaction.InputGripRotation, interaction.Action{ID: 3, Description: "Turn"}, opt),
		interaction.NewDigital(4, interaction.InputThumbStick, interaction.Action{ID: 4, Description: "Miswired"}, opt),
		interaction.NewNone(5, interaction.InputNone, interaction.ActionNone, opt),
	)
	require.NoError(t, err)
	rec := th.NewRecorder(t, 0)
	c, err := controller.New(controller.Source{ID: 2}, mappings, rec, logger)
	require.NoError(t, err)

	rot := mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})
	s := controller.NewSourceState()
	s.SelectPressedAmount = 0.25
	s.PointerPose.Position = mgl64.Vec3{0, 0, 2}
	s.GripPose.Rotation = rot
	s.ThumbstickPosition = mgl64.Vec2{1, 1}

	assert.Equal(t, 3, c.Update(s))
	assert.Equal(t, []string{
		"raw Any 0.25",
		fmt.Sprintf("position Aim %v", mgl64.Vec3{0, 0, 2}),
		fmt.Sprintf("rotation Turn %v", rot),
	}, rec.Names())
	assert.Equal(t, 1, buf.Count("does not match mapping kind"), "miswired mapping is diagnosed and skipped")
}

func TestNew_RequiresMappings(t *testing.T) {
	_, err := controller.New(controller.Source{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestUpdate_NilDispatcher(t *testing.T) {
	mappings, err := profile.WindowsMixedReality(interaction.HandednessRight).Build()
	require.NoError(t, err)
	c, err := controller.New(controller.Source{}, mappings, nil, nil)
	require.NoError(t, err)

	s := controller.NewSourceState()
	s.Grasped = true
	assert.Equal(t, 1, c.Update(s))
	assert.True(t, c.LastState().Grasped)
}
