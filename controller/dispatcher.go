package controller

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/xrinput/interaction"
)

// Source identifies the controller that raised an event.
type Source struct {
	ID         uint32
	Name       string
	Handedness interaction.Handedness
}

// Dispatcher receives the events raised by Controller.Update. Each event is
// raised once per change, in mapping order.
type Dispatcher interface {
	InputDown(src Source, action interaction.Action)
	InputUp(src Source, action interaction.Action)
	InputPressed(src Source, action interaction.Action, amount float64)
	DualAxisChanged(src Source, action interaction.Action, v mgl64.Vec2)
	PositionChanged(src Source, action interaction.Action, v mgl64.Vec3)
	RotationChanged(src Source, action interaction.Action, v mgl64.Quat)
	PoseChanged(src Source, action interaction.Action, v interaction.Pose)
	RawChanged(src Source, action interaction.Action, v any)
}

// LogDispatcher logs every event at debug level.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) log(src Source, action interaction.Action, event string, args ...any) {
	attrs := append([]any{
		"source", src.ID,
		"hand", src.Handedness.String(),
		"action", action.String(),
	}, args...)
	d.logger.Debug(event, attrs...)
}

func (d *LogDispatcher) InputDown(src Source, action interaction.Action) {
	d.log(src, action, "input down")
}

func (d *LogDispatcher) InputUp(src Source, action interaction.Action) {
	d.log(src, action, "input up")
}

func (d *LogDispatcher) InputPressed(src Source, action interaction.Action, amount float64) {
	d.log(src, action, "input pressed", "amount", amount)
}

func (d *LogDispatcher) DualAxisChanged(src Source, action interaction.Action, v mgl64.Vec2) {
	d.log(src, action, "dual axis changed", "x", v.X(), "y", v.Y())
}

func (d *LogDispatcher) PositionChanged(src Source, action interaction.Action, v mgl64.Vec3) {
	d.log(src, action, "position changed", "position", v)
}

func (d *LogDispatcher) RotationChanged(src Source, action interaction.Action, v mgl64.Quat) {
	d.log(src, action, "rotation changed", "rotation", v)
}

func (d *LogDispatcher) PoseChanged(src Source, action interaction.Action, v interaction.Pose) {
	d.log(src, action, "pose changed", "position", v.Position, "rotation", v.Rotation)
}

func (d *LogDispatcher) RawChanged(src Source, action interaction.Action, v any) {
	d.log(src, action, "raw changed", "value", v)
}
