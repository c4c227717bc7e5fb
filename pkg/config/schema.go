package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color serialized as "#RRGGBB" or "#RRGGBBAA" hex.
type Color struct {
	R, G, B, A uint8
}

// NewColor creates a color from RGBA components.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" (leading '#' optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	parse := func(part string) (uint8, error) {
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return uint8(v), nil
	}

	var c Color
	var err error
	switch len(hex) {
	case 6:
		c.A = 255
	case 8:
		if c.A, err = parse(hex[6:8]); err != nil {
			return Color{}, err
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if c.R, err = parse(hex[0:2]); err != nil {
		return Color{}, err
	}
	if c.G, err = parse(hex[2:4]); err != nil {
		return Color{}, err
	}
	if c.B, err = parse(hex[4:6]); err != nil {
		return Color{}, err
	}
	return c, nil
}

// Hex returns the "#rrggbbaa" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// UnmarshalText decodes a hex string. Used by both the TOML decoder and
// envconfig.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText encodes the color as hex.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Settings holds global timing and appearance settings.
//
// The envconfig tags allow SESAME_* environment variables to override
// individual values after file merging.
type Settings struct {
	// Key combo that launches the switcher (e.g. "alt+space")
	ActivationKey string `toml:"activation_key" envconfig:"activation_key"`

	// Delay in ms before activating an exact match, so a longer hint
	// (gg, ggg) can still be typed
	ActivationDelay uint64 `toml:"activation_delay" envconfig:"activation_delay"`

	// Delay in ms before the full overlay appears (0 = immediate)
	OverlayDelay uint64 `toml:"overlay_delay" envconfig:"overlay_delay"`

	// Alt released within this many ms switches straight to the
	// previous window
	QuickSwitchThreshold uint64 `toml:"quick_switch_threshold" envconfig:"quick_switch_threshold"`

	// Border width in pixels for the focus indicator
	BorderWidth float64 `toml:"border_width" envconfig:"border_width"`

	BorderColor      Color `toml:"border_color" envconfig:"border_color"`
	BackgroundColor  Color `toml:"background_color" envconfig:"background_color"`
	CardColor        Color `toml:"card_color" envconfig:"card_color"`
	TextColor        Color `toml:"text_color" envconfig:"text_color"`
	HintColor        Color `toml:"hint_color" envconfig:"hint_color"`
	HintMatchedColor Color `toml:"hint_matched_color" envconfig:"hint_matched_color"`

	// Env files loaded for every launch (direnv .env style)
	EnvFiles []string `toml:"env_files" envconfig:"env_files"`
}

// LaunchConfig describes how to launch an application when a key has no
// matching window. In TOML it is either a plain command string or a
// table with command, args, env_files and env.
type LaunchConfig struct {
	Command  string            `toml:"command"`
	Args     []string          `toml:"args"`
	EnvFiles []string          `toml:"env_files"`
	Env      map[string]string `toml:"env"`
}

// UnmarshalTOML accepts both `launch = "firefox"` and the advanced table
// form.
func (l *LaunchConfig) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		*l = LaunchConfig{Command: v}
		return nil
	case map[string]interface{}:
		cmd, _ := v["command"].(string)
		if cmd == "" {
			return fmt.Errorf("launch table requires a command")
		}
		l.Command = cmd
		l.Args = toStringSlice(v["args"])
		l.EnvFiles = toStringSlice(v["env_files"])
		l.Env = toStringMap(v["env"])
		return nil
	default:
		return fmt.Errorf("launch must be a string or a table, got %T", data)
	}
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toStringMap(v interface{}) map[string]string {
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, item := range raw {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}

// KeyBinding associates a key with app id patterns and an optional
// launch command.
type KeyBinding struct {
	// App IDs that match this key
	Apps []string `toml:"apps"`
	// Launch config when no matching window exists
	Launch *LaunchConfig `toml:"launch"`
}
