// Package config loads and merges the open-sesame configuration.
//
// Sources, later overriding earlier: built-in defaults,
// /etc/open-sesame/config.toml, ~/.config/open-sesame/config.toml,
// ~/.config/open-sesame/config.d/*.toml (sorted), then SESAME_*
// environment variables for individual settings.
package config

import "strings"

// Config is the merged application configuration.
type Config struct {
	Settings Settings `toml:"settings"`

	// Key bindings: letter -> binding
	Keys map[string]KeyBinding `toml:"keys"`
}

// KeyForApp returns the bound key for an app id. Patterns match exactly,
// case-insensitively, or against the app id's last dot-segment
// ("ghostty" matches "com.mitchellh.ghostty").
func (c *Config) KeyForApp(appID string) (byte, bool) {
	appLower := strings.ToLower(appID)
	lastSegment := appLower
	if i := strings.LastIndexByte(appLower, '.'); i >= 0 {
		lastSegment = appLower[i+1:]
	}

	for key, binding := range c.Keys {
		if key == "" {
			continue
		}
		for _, pattern := range binding.Apps {
			if pattern == appID {
				return key[0], true
			}
			patternLower := strings.ToLower(pattern)
			if patternLower == appLower || patternLower == lastSegment {
				return key[0], true
			}
		}
	}
	return 0, false
}

// LaunchConfig returns the launch config bound to a key, if any.
func (c *Config) LaunchConfig(key string) (*LaunchConfig, bool) {
	binding, ok := c.Keys[key]
	if !ok || binding.Launch == nil {
		return nil, false
	}
	return binding.Launch, true
}
