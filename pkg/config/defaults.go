package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// Default creates a configuration with built-in settings and key
// bindings for common applications.
func Default() *Config {
	return &Config{
		Settings: Settings{
			ActivationKey:        "alt+space",
			ActivationDelay:      200,
			OverlayDelay:         720,
			QuickSwitchThreshold: 250,
			BorderWidth:          3.0,
			// Soft lavender-purple with ~70% opacity
			BorderColor:      NewColor(180, 160, 255, 180),
			BackgroundColor:  NewColor(0, 0, 0, 200),
			CardColor:        NewColor(30, 30, 30, 240),
			TextColor:        NewColor(255, 255, 255, 255),
			HintColor:        NewColor(100, 100, 100, 255),
			HintMatchedColor: NewColor(76, 175, 80, 255),
		},
		Keys: defaultKeys(),
	}
}

func defaultKeys() map[string]KeyBinding {
	bind := func(launch string, apps ...string) KeyBinding {
		b := KeyBinding{Apps: apps}
		if launch != "" {
			b.Launch = &LaunchConfig{Command: launch}
		}
		return b
	}

	return map[string]KeyBinding{
		"g": bind("ghostty", "ghostty", "com.mitchellh.ghostty"),
		"f": bind("firefox", "firefox", "org.mozilla.firefox"),
		"e": bind("microsoft-edge", "microsoft-edge"),
		"c": bind("", "chromium", "google-chrome"),
		"v": bind("code", "code", "Code", "cursor", "Cursor"),
		"n": bind("nautilus", "nautilus", "org.gnome.Nautilus"),
		"s": bind("slack", "slack", "Slack"),
		"d": bind("discord", "discord", "Discord"),
		"m": bind("spotify", "spotify"),
		"t": bind("thunderbird", "thunderbird"),
	}
}

// DefaultTOML renders the default configuration, for -print-config.
func DefaultTOML() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return ""
	}
	return buf.String()
}
