package config

import "fmt"

// Severity of a validation issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Message  string
}

// Validate checks a merged configuration and returns all findings.
// An empty slice means the configuration is usable.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	warn := func(format string, args ...interface{}) {
		issues = append(issues, Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
	}
	fail := func(format string, args ...interface{}) {
		issues = append(issues, Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Settings.ActivationDelay == 0 {
		warn("activation_delay is 0: exact matches activate before a longer hint can be typed")
	}
	if cfg.Settings.QuickSwitchThreshold == 0 {
		warn("quick_switch_threshold is 0: quick Alt+Tab switching is disabled")
	}
	if cfg.Settings.BorderWidth < 0 {
		fail("border_width must not be negative, got %v", cfg.Settings.BorderWidth)
	}

	seen := make(map[string]string)
	for key, binding := range cfg.Keys {
		if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
			fail("key %q must be a single lowercase letter", key)
		}
		if len(binding.Apps) == 0 && binding.Launch == nil {
			warn("key %q has no apps and no launch command", key)
		}
		if binding.Launch != nil && binding.Launch.Command == "" {
			fail("key %q has a launch config with an empty command", key)
		}
		for _, pattern := range binding.Apps {
			if prev, dup := seen[pattern]; dup {
				warn("app pattern %q bound to both %q and %q", pattern, prev, key)
				continue
			}
			seen[pattern] = key
		}
	}

	return issues
}
