package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name   string       `toml:"name"`
	Base   thTOMLBase   `toml:"base"`
	Thumb  thTOMLThumb  `toml:"thumbnail"`
	Slider thTOMLSlider `toml:"slider"`
	Help   thTOMLHelp   `toml:"help"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
}

type thTOMLThumb struct {
	Border   string `toml:"border"`
	Selected string `toml:"selected"`
}

type thTOMLSlider struct {
	Filled string `toml:"filled"`
	Empty  string `toml:"empty"`
}

type thTOMLHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:         tt.Name,
		Background:   tt.Base.Background,
		Foreground:   tt.Base.Foreground,
		Dim:          tt.Base.Dim,
		Accent:       tt.Base.Accent,
		Error:        tt.Base.Error,
		Border:       tt.Thumb.Border,
		Selected:     tt.Thumb.Selected,
		SliderFilled: tt.Slider.Filled,
		SliderEmpty:  tt.Slider.Empty,
		HelpKey:      tt.Help.Key,
		HelpDesc:     tt.Help.Desc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads a TOML theme from path and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
			Error:      t.Error,
		},
		Thumb:  thTOMLThumb{Border: t.Border, Selected: t.Selected},
		Slider: thTOMLSlider{Filled: t.SliderFilled, Empty: t.SliderEmpty},
		Help:   thTOMLHelp{Key: t.HelpKey, Desc: t.HelpDesc},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that the name is set and every colour is a valid
// "#RRGGBB" value.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}

	colors := []struct{ field, value string }{
		{"background", t.Background},
		{"foreground", t.Foreground},
		{"dim", t.Dim},
		{"accent", t.Accent},
		{"error", t.Error},
		{"thumbnail.border", t.Border},
		{"thumbnail.selected", t.Selected},
		{"slider.filled", t.SliderFilled},
		{"slider.empty", t.SliderEmpty},
		{"help.key", t.HelpKey},
		{"help.desc", t.HelpDesc},
	}
	for _, c := range colors {
		if c.value == "" {
			return fmt.Errorf("theme: missing required field %q", c.field)
		}
		if !thHexColorRegex.MatchString(c.value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", c.value, c.field)
		}
	}
	return nil
}
