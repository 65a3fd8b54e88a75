package interaction

import "fmt"

// PhysicalInput names a hardware control of a controller.
type PhysicalInput uint16

const (
	InputNone PhysicalInput = iota
	InputSpatialPointer
	InputPointerPosition
	InputPointerRotation
	InputSelect
	InputTrigger
	InputTriggerPress
	InputPointerClick
	InputSpatialGrip
	InputGripPosition
	InputGripRotation
	InputGripPress
	InputThumbStick
	InputThumbStickPress
	InputTouchpad
	InputTouchpadTouch
	InputTouchpadPress
	InputMenu

	inputCount
)

var inputInfo = [...]struct {
	name string
	kind Kind
}{
	InputNone:            {"none", KindNone},
	InputSpatialPointer:  {"spatialPointer", KindSixDof},
	InputPointerPosition: {"pointerPosition", KindThreeDofPosition},
	InputPointerRotation: {"pointerRotation", KindThreeDofRotation},
	InputSelect:          {"select", KindDigital},
	InputTrigger:         {"trigger", KindSingleAxis},
	InputTriggerPress:    {"triggerPress", KindDigital},
	InputPointerClick:    {"pointerClick", KindDigital},
	InputSpatialGrip:     {"spatialGrip", KindSixDof},
	InputGripPosition:    {"gripPosition", KindThreeDofPosition},
	InputGripRotation:    {"gripRotation", KindThreeDofRotation},
	InputGripPress:       {"gripPress", KindDigital},
	InputThumbStick:      {"thumbStick", KindDualAxis},
	InputThumbStickPress: {"thumbStickPress", KindDigital},
	InputTouchpad:        {"touchpad", KindDualAxis},
	InputTouchpadTouch:   {"touchpadTouch", KindDigital},
	InputTouchpadPress:   {"touchpadPress", KindDigital},
	InputMenu:            {"menu", KindDigital},
}

func (p PhysicalInput) Valid() bool { return p < inputCount }

func (p PhysicalInput) String() string {
	if !p.Valid() {
		return fmt.Sprintf("input(%d)", uint16(p))
	}
	return inputInfo[p].name
}

// Kind returns the kind of reading the control naturally produces.
// InputNone produces nothing and reports KindNone.
func (p PhysicalInput) Kind() Kind {
	if !p.Valid() {
		return KindNone
	}
	return inputInfo[p].kind
}

// ParsePhysicalInput resolves an input name using the same rules as ParseKind.
func ParsePhysicalInput(s string) (PhysicalInput, error) {
	n := normalizeName(s)
	for i, info := range inputInfo {
		if normalizeName(info.name) == n {
			return PhysicalInput(i), nil
		}
	}
	return InputNone, fmt.Errorf("%w: %q", ErrUnknownInput, s)
}

func (p PhysicalInput) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInput, uint16(p))
	}
	return []byte(inputInfo[p].name), nil
}

func (p *PhysicalInput) UnmarshalText(b []byte) error {
	v, err := ParsePhysicalInput(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Action is the logical action raised to consumers when a mapping changes.
type Action struct {
	ID          uint32 `json:"id" yaml:"id" toml:"id"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// ActionNone is the unbound action.
var ActionNone = Action{}

func (a Action) String() string {
	if a.Description == "" {
		return fmt.Sprintf("action(%d)", a.ID)
	}
	return fmt.Sprintf("%s(%d)", a.Description, a.ID)
}

// Handedness tells which hand a controller is held in.
type Handedness uint8

const (
	HandednessNone Handedness = iota
	HandednessLeft
	HandednessRight
	HandednessBoth
)

var handednessNames = [...]string{"none", "left", "right", "both"}

func (h Handedness) String() string {
	if int(h) >= len(handednessNames) {
		return fmt.Sprintf("handedness(%d)", uint8(h))
	}
	return handednessNames[h]
}

func ParseHandedness(s string) (Handedness, error) {
	n := normalizeName(s)
	if n == "" {
		return HandednessNone, nil
	}
	for i, name := range handednessNames {
		if name == n {
			return Handedness(i), nil
		}
	}
	return HandednessNone, fmt.Errorf("unknown handedness %q", s)
}
