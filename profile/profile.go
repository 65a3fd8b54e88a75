// Package profile describes the interaction mappings of a controller and
// loads them from JSON, YAML or TOML files.
package profile

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/xrinput/interaction"
)

var (
	ErrDuplicateID      = errors.New("duplicate mapping id")
	ErrIncompatibleKind = errors.New("kind not compatible with input")
	ErrUnsupportedFmt   = errors.New("unsupported profile format")
)

// Definition describes one mapping.
type Definition struct {
	ID     uint32
	Kind   interaction.Kind
	Input  interaction.PhysicalInput
	Action interaction.Action
}

// Profile is the full mapping set of one controller.
type Profile struct {
	Name       string
	Handedness interaction.Handedness
	Mappings   []Definition
}

// Validate checks the profile for setup errors: kinds or inputs outside the
// known sets, duplicate ids or inputs, and kinds a control cannot produce.
// Raw mappings accept any input.
func (p *Profile) Validate() error {
	ids := make(map[uint32]int, len(p.Mappings))
	inputs := make(map[interaction.PhysicalInput]int, len(p.Mappings))
	for i, d := range p.Mappings {
		if !d.Kind.Valid() {
			return fmt.Errorf("mapping %d: %w: %s", d.ID, interaction.ErrUnsupportedKind, d.Kind)
		}
		if !d.Input.Valid() {
			return fmt.Errorf("mapping %d: %w: %s", d.ID, interaction.ErrUnknownInput, d.Input)
		}
		if prev, dup := ids[d.ID]; dup {
			return fmt.Errorf("%w: %d at positions %d and %d", ErrDuplicateID, d.ID, prev, i)
		}
		ids[d.ID] = i
		if d.Input != interaction.InputNone {
			if prev, dup := inputs[d.Input]; dup {
				return fmt.Errorf("%w: %s at positions %d and %d", interaction.ErrDuplicateInput, d.Input, prev, i)
			}
			inputs[d.Input] = i
		}
		if want := d.Input.Kind(); d.Kind != interaction.KindRaw && want != interaction.KindNone && d.Kind != want {
			return fmt.Errorf("mapping %d: %w: %s produces %s, not %s", d.ID, ErrIncompatibleKind, d.Input, want, d.Kind)
		}
	}
	return nil
}

// Build validates the profile and instantiates its mappings in order.
func (p *Profile) Build(opts ...interaction.Option) (*interaction.Collection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	items := make([]interaction.Interaction, 0, len(p.Mappings))
	for _, d := range p.Mappings {
		m, err := interaction.New(d.ID, d.Kind, d.Input, d.Action, opts...)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", d.ID, err)
		}
		items = append(items, m)
	}
	return interaction.NewCollection(items...)
}

// Digest identifies the layout of the profile: order, ids, kinds and inputs.
// Action bindings are not part of it since they can be rebound at runtime.
func (p *Profile) Digest() [32]byte {
	b := make([]byte, 0, 4+len(p.Mappings)*7)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.Mappings)))
	for _, d := range p.Mappings {
		b = binary.LittleEndian.AppendUint32(b, d.ID)
		b = append(b, byte(d.Kind))
		b = binary.LittleEndian.AppendUint16(b, uint16(d.Input))
	}
	return blake2b.Sum256(b)
}

// WindowsMixedReality returns the default mapping set of a motion controller.
// The thumbstick walks on the left hand and looks on any other.
func WindowsMixedReality(h interaction.Handedness) *Profile {
	thumbstick := interaction.Action{ID: 6, Description: "Look"}
	if h == interaction.HandednessLeft {
		thumbstick = interaction.Action{ID: 5, Description: "Walk"}
	}
	sel := interaction.Action{ID: 1, Description: "Select"}
	pickup := interaction.Action{ID: 9, Description: "Pickup"}

	return &Profile{
		Name:       "windows-mixed-reality",
		Handedness: h,
		Mappings: []Definition{
			{ID: 1, Kind: interaction.KindSixDof, Input: interaction.InputSpatialPointer, Action: sel},
			{ID: 2, Kind: interaction.KindSingleAxis, Input: interaction.InputTrigger, Action: sel},
			{ID: 3, Kind: interaction.KindSixDof, Input: interaction.InputSpatialGrip, Action: interaction.Action{ID: 2, Description: "Grip"}},
			{ID: 4, Kind: interaction.KindDigital, Input: interaction.InputGripPress, Action: interaction.Action{ID: 3, Description: "Grab"}},
			{ID: 5, Kind: interaction.KindDigital, Input: interaction.InputMenu, Action: interaction.Action{ID: 4, Description: "Menu"}},
			{ID: 6, Kind: interaction.KindDualAxis, Input: interaction.InputThumbStick, Action: thumbstick},
			{ID: 7, Kind: interaction.KindDigital, Input: interaction.InputThumbStickPress, Action: interaction.Action{ID: 7, Description: "Interact"}},
			{ID: 8, Kind: interaction.KindDualAxis, Input: interaction.InputTouchpad, Action: interaction.Action{ID: 8, Description: "Inventory"}},
			{ID: 9, Kind: interaction.KindDigital, Input: interaction.InputTouchpadTouch, Action: pickup},
			{ID: 10, Kind: interaction.KindDigital, Input: interaction.InputTouchpadPress, Action: pickup},
		},
	}
}
