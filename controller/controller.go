// Package controller drives a set of interaction mappings from per-tick
// motion controller readings and raises events for the ones that changed.
package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alia5/xrinput/interaction"
)

// TrackingState reports whether the device is currently tracked.
type TrackingState uint8

const (
	NotTracked TrackingState = iota
	Tracked
)

func (t TrackingState) String() string {
	if t == Tracked {
		return "tracked"
	}
	return "notTracked"
}

// Controller owns the mappings of one device. It must be driven from a
// single goroutine.
type Controller struct {
	source     Source
	mappings   *interaction.Collection
	dispatcher Dispatcher
	logger     *slog.Logger

	state TrackingState
	last  SourceState
	ticks uint64
}

// New returns a controller over mappings. A nil dispatcher drops events.
func New(src Source, mappings *interaction.Collection, dispatcher Dispatcher, logger *slog.Logger) (*Controller, error) {
	if mappings == nil {
		return nil, errors.New("controller: nil mappings")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		source:     src,
		mappings:   mappings,
		dispatcher: dispatcher,
		logger:     logger.With("source", src.ID),
		last:       NewSourceState(),
	}, nil
}

func (c *Controller) Source() Source                        { return c.source }
func (c *Controller) Interactions() *interaction.Collection { return c.mappings }
func (c *Controller) State() TrackingState                  { return c.state }
func (c *Controller) LastState() SourceState                { return c.last }
func (c *Controller) Ticks() uint64                         { return c.ticks }

// Update runs one tick: every mapping receives the reading for its input,
// then each mapping whose value changed raises exactly one event.
// It returns the number of events raised.
func (c *Controller) Update(s SourceState) int {
	c.ticks++
	c.last = s
	if s.Tracked {
		c.state = Tracked
	} else {
		c.state = NotTracked
	}

	for _, m := range c.mappings.All() {
		write(m, &s)
	}

	raised := 0
	for _, m := range c.mappings.All() {
		if !m.Changed() {
			continue
		}
		if err := c.dispatch(m); err != nil {
			c.logger.Warn("dispatch skipped", "mapping", m.ID(), "error", err)
			continue
		}
		raised++
	}
	return raised
}

// write stores the reading of m's input through the setter of the input's
// natural kind. Raw mappings get the same reading boxed.
func write(m interaction.Interaction, s *SourceState) {
	in := m.Input()
	if in == interaction.InputNone {
		return
	}
	if m.Kind() == interaction.KindRaw {
		m.SetRaw(s.reading(in))
		return
	}
	switch in {
	case interaction.InputSpatialPointer:
		m.SetPose(s.PointerPose)
	case interaction.InputPointerPosition:
		m.SetPosition(s.PointerPose.Position)
	case interaction.InputPointerRotation:
		m.SetRotation(s.PointerPose.Rotation)
	case interaction.InputSelect, interaction.InputTriggerPress, interaction.InputPointerClick:
		m.SetBool(s.SelectPressed)
	case interaction.InputTrigger:
		m.SetFloat(s.SelectPressedAmount)
	case interaction.InputSpatialGrip:
		m.SetPose(s.GripPose)
	case interaction.InputGripPosition:
		m.SetPosition(s.GripPose.Position)
	case interaction.InputGripRotation:
		m.SetRotation(s.GripPose.Rotation)
	case interaction.InputGripPress:
		m.SetBool(s.Grasped)
	case interaction.InputThumbStick:
		m.SetVector2(s.ThumbstickPosition)
	case interaction.InputThumbStickPress:
		m.SetBool(s.ThumbstickPressed)
	case interaction.InputTouchpad:
		m.SetVector2(s.TouchpadPosition)
	case interaction.InputTouchpadTouch:
		m.SetBool(s.TouchpadTouched)
	case interaction.InputTouchpadPress:
		m.SetBool(s.TouchpadPressed)
	case interaction.InputMenu:
		m.SetBool(s.MenuPressed)
	}
}

func (s *SourceState) reading(in interaction.PhysicalInput) any {
	switch in {
	case interaction.InputSpatialPointer:
		return s.PointerPose
	case interaction.InputPointerPosition:
		return s.PointerPose.Position
	case interaction.InputPointerRotation:
		return s.PointerPose.Rotation
	case interaction.InputSelect, interaction.InputTriggerPress, interaction.InputPointerClick:
		return s.SelectPressed
	case interaction.InputTrigger:
		return s.SelectPressedAmount
	case interaction.InputSpatialGrip:
		return s.GripPose
	case interaction.InputGripPosition:
		return s.GripPose.Position
	case interaction.InputGripRotation:
		return s.GripPose.Rotation
	case interaction.InputGripPress:
		return s.Grasped
	case interaction.InputThumbStick:
		return s.ThumbstickPosition
	case interaction.InputThumbStickPress:
		return s.ThumbstickPressed
	case interaction.InputTouchpad:
		return s.TouchpadPosition
	case interaction.InputTouchpadTouch:
		return s.TouchpadTouched
	case interaction.InputTouchpadPress:
		return s.TouchpadPressed
	case interaction.InputMenu:
		return s.MenuPressed
	default:
		return nil
	}
}

func (c *Controller) dispatch(m interaction.Interaction) error {
	d := c.dispatcher
	if d == nil {
		return nil
	}
	a := m.Action()
	switch m.Kind() {
	case interaction.KindNone:
	case interaction.KindRaw:
		d.RawChanged(c.source, a, m.Raw())
	case interaction.KindDigital:
		if m.Bool() {
			d.InputDown(c.source, a)
		} else {
			d.InputUp(c.source, a)
		}
	case interaction.KindSingleAxis:
		d.InputPressed(c.source, a, m.Float())
	case interaction.KindDualAxis:
		d.DualAxisChanged(c.source, a, m.Vector2())
	case interaction.KindThreeDofPosition:
		d.PositionChanged(c.source, a, m.Position())
	case interaction.KindThreeDofRotation:
		d.RotationChanged(c.source, a, m.Rotation())
	case interaction.KindSixDof:
		d.PoseChanged(c.source, a, m.Pose())
	default:
		return fmt.Errorf("%w: %s", interaction.ErrUnsupportedKind, m.Kind())
	}
	return nil
}
