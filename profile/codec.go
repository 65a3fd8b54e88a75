package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/xrinput/interaction"
)

// fileProfile is the on-disk shape. Names are kept as strings so unknown
// kinds and inputs are reported by Load with their original spelling.
type fileProfile struct {
	Name       string        `json:"name" yaml:"name" toml:"name"`
	Handedness string        `json:"handedness,omitempty" yaml:"handedness,omitempty" toml:"handedness,omitempty"`
	Mappings   []fileMapping `json:"mappings" yaml:"mappings" toml:"mappings"`
}

type fileMapping struct {
	ID     uint32             `json:"id" yaml:"id" toml:"id"`
	Kind   string             `json:"kind" yaml:"kind" toml:"kind"`
	Input  string             `json:"input" yaml:"input" toml:"input"`
	Action interaction.Action `json:"action" yaml:"action" toml:"action"`
}

// NormalizeFormat maps a format name or file extension to "json", "yaml" or
// "toml". It returns "" for anything else.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimPrefix(f, ".")) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// Load reads and validates a profile. The format follows the file extension.
func Load(path string) (*Profile, error) {
	format := NormalizeFormat(filepath.Ext(path))
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFmt, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses and validates a profile in the given format.
func Decode(r io.Reader, format string) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var fp fileProfile
	switch NormalizeFormat(format) {
	case "json":
		err = json.Unmarshal(data, &fp)
	case "yaml":
		err = yaml.Unmarshal(data, &fp)
	case "toml":
		err = toml.Unmarshal(data, &fp)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFmt, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s profile: %w", format, err)
	}

	p := &Profile{Name: fp.Name, Mappings: make([]Definition, 0, len(fp.Mappings))}
	if p.Handedness, err = interaction.ParseHandedness(fp.Handedness); err != nil {
		return nil, err
	}
	for _, m := range fp.Mappings {
		kind, err := interaction.ParseKind(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", m.ID, err)
		}
		input, err := interaction.ParsePhysicalInput(m.Input)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", m.ID, err)
		}
		p.Mappings = append(p.Mappings, Definition{ID: m.ID, Kind: kind, Input: input, Action: m.Action})
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode writes the profile in the given format.
func Encode(w io.Writer, p *Profile, format string) error {
	fp := fileProfile{Name: p.Name, Mappings: make([]fileMapping, 0, len(p.Mappings))}
	if p.Handedness != interaction.HandednessNone {
		fp.Handedness = p.Handedness.String()
	}
	for _, d := range p.Mappings {
		fp.Mappings = append(fp.Mappings, fileMapping{
			ID:     d.ID,
			Kind:   d.Kind.String(),
			Input:  d.Input.String(),
			Action: d.Action,
		})
	}

	var (
		data []byte
		err  error
	)
	switch NormalizeFormat(format) {
	case "json":
		data, err = json.MarshalIndent(fp, "", "  ")
		data = append(data, '\n')
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(fp)
		data = buf.Bytes()
	case "toml":
		data, err = toml.Marshal(fp)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFmt, format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
