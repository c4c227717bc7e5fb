package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/ScopeCreep-zip/open-sesame/pkg/paths"
)

const systemConfigDir = "/etc/open-sesame"

// envPrefix yields SESAME_ACTIVATION_DELAY and friends.
const envPrefix = "sesame"

// Load merges configuration from the default locations and applies
// environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if err := mergeFile(cfg, filepath.Join(systemConfigDir, "config.toml")); err != nil {
		return nil, err
	}

	userDir, err := paths.ConfigDir()
	if err == nil {
		if err := mergeFile(cfg, filepath.Join(userDir, "config.toml")); err != nil {
			return nil, err
		}
		if err := mergeDir(cfg, filepath.Join(userDir, "config.d")); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPaths merges configuration from explicit files only (plus
// environment overrides). Missing files are an error here, unlike the
// default search path.
func LoadFromPaths(files []string) (*Config, error) {
	cfg := Default()
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := mergeContent(cfg, string(content), path); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile merges a config file into base if it exists.
func mergeFile(base *Config, path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return mergeContent(base, string(content), path)
}

// mergeDir merges every *.toml file in a config.d directory, sorted by
// name.
func mergeDir(base *Config, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config.d %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := mergeFile(base, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func mergeContent(base *Config, content, source string) error {
	// The overlay starts at defaults so untouched settings are
	// recognizable during the merge.
	overlay := Default()
	if _, err := toml.Decode(content, overlay); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	deepMerge(base, overlay)
	return nil
}

// deepMerge folds overlay into base. A setting is taken from the
// overlay when it differs from the built-in default; key bindings merge
// additively with overlay keys winning.
func deepMerge(base, overlay *Config) {
	defaults := Default()

	if overlay.Settings.ActivationKey != defaults.Settings.ActivationKey {
		base.Settings.ActivationKey = overlay.Settings.ActivationKey
	}
	if overlay.Settings.ActivationDelay != defaults.Settings.ActivationDelay {
		base.Settings.ActivationDelay = overlay.Settings.ActivationDelay
	}
	if overlay.Settings.OverlayDelay != defaults.Settings.OverlayDelay {
		base.Settings.OverlayDelay = overlay.Settings.OverlayDelay
	}
	if overlay.Settings.QuickSwitchThreshold != defaults.Settings.QuickSwitchThreshold {
		base.Settings.QuickSwitchThreshold = overlay.Settings.QuickSwitchThreshold
	}
	if overlay.Settings.BorderWidth != defaults.Settings.BorderWidth {
		base.Settings.BorderWidth = overlay.Settings.BorderWidth
	}
	if overlay.Settings.BorderColor != defaults.Settings.BorderColor {
		base.Settings.BorderColor = overlay.Settings.BorderColor
	}
	if overlay.Settings.BackgroundColor != defaults.Settings.BackgroundColor {
		base.Settings.BackgroundColor = overlay.Settings.BackgroundColor
	}
	if overlay.Settings.CardColor != defaults.Settings.CardColor {
		base.Settings.CardColor = overlay.Settings.CardColor
	}
	if overlay.Settings.TextColor != defaults.Settings.TextColor {
		base.Settings.TextColor = overlay.Settings.TextColor
	}
	if overlay.Settings.HintColor != defaults.Settings.HintColor {
		base.Settings.HintColor = overlay.Settings.HintColor
	}
	if overlay.Settings.HintMatchedColor != defaults.Settings.HintMatchedColor {
		base.Settings.HintMatchedColor = overlay.Settings.HintMatchedColor
	}
	if len(overlay.Settings.EnvFiles) > 0 {
		base.Settings.EnvFiles = overlay.Settings.EnvFiles
	}

	for key, binding := range overlay.Keys {
		if _, isDefault := defaults.Keys[key]; isDefault && bindingEqual(binding, defaults.Keys[key]) {
			continue
		}
		if base.Keys == nil {
			base.Keys = make(map[string]KeyBinding)
		}
		base.Keys[key] = binding
	}
}

func bindingEqual(a, b KeyBinding) bool {
	if len(a.Apps) != len(b.Apps) {
		return false
	}
	for i := range a.Apps {
		if a.Apps[i] != b.Apps[i] {
			return false
		}
	}
	switch {
	case a.Launch == nil && b.Launch == nil:
		return true
	case a.Launch == nil || b.Launch == nil:
		return false
	default:
		return a.Launch.Command == b.Launch.Command &&
			len(a.Launch.Args) == len(b.Launch.Args) &&
			len(a.Launch.EnvFiles) == len(b.Launch.EnvFiles)
	}
}

func applyEnvOverrides(cfg *Config) error {
	if err := envconfig.Process(envPrefix, &cfg.Settings); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}
