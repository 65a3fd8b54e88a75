package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/xrinput/controller"
	"github.com/Alia5/xrinput/interaction"
)

// Event is one dispatcher call captured by Recorder.
type Event struct {
	Source controller.Source
	Name   string
	Action interaction.Action
	Value  any
}

func (e Event) String() string {
	if e.Value == nil {
		return fmt.Sprintf("%s %s", e.Name, e.Action.Description)
	}
	return fmt.Sprintf("%s %s %v", e.Name, e.Action.Description, e.Value)
}

// Recorder is a controller.Dispatcher capturing every event. When created
// with a buffered channel it also forwards each event to it.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

var _ controller.Dispatcher = (*Recorder)(nil)

func NewRecorder(t *testing.T, buffer int) *Recorder {
	t.Helper()
	r := &Recorder{}
	if buffer > 0 {
		r.ch = make(chan Event, buffer)
	}
	return r
}

// C returns the forwarding channel, nil when unbuffered.
func (r *Recorder) C() <-chan Event { return r.ch }

// Events returns a copy of the captured events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Names returns the captured events formatted with Event.String.
func (r *Recorder) Names() []string {
	var out []string
	for _, e := range r.Events() {
		out = append(out, e.String())
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func (r *Recorder) add(src controller.Source, name string, a interaction.Action, v any) {
	e := Event{Source: src, Name: name, Action: a, Value: v}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	if r.ch != nil {
		r.ch <- e
	}
}

func (r *Recorder) InputDown(src controller.Source, a interaction.Action) {
	r.add(src, "down", a, nil)
}

func (r *Recorder) InputUp(src controller.Source, a interaction.Action) {
	r.add(src, "up", a, nil)
}

func (r *Recorder) InputPressed(src controller.Source, a interaction.Action, amount float64) {
	r.add(src, "pressed", a, amount)
}

func (r *Recorder) DualAxisChanged(src controller.Source, a interaction.Action, v mgl64.Vec2) {
	r.add(src, "dualAxis", a, v)
}

func (r *Recorder) PositionChanged(src controller.Source, a interaction.Action, v mgl64.Vec3) {
	r.add(src, "position", a, v)
}

func (r *Recorder) RotationChanged(src controller.Source, a interaction.Action, v mgl64.Quat) {
	r.add(src, "rotation", a, v)
}

func (r *Recorder) PoseChanged(src controller.Source, a interaction.Action, v interaction.Pose) {
	r.add(src, "pose", a, v)
}

func (r *Recorder) RawChanged(src controller.Source, a interaction.Action, v any) {
	r.add(src, "raw", a, v)
}
