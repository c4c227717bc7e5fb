package wm

import (
	"fmt"
	"os"

	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
)

// Manager handles window management operations based on the session type
type Manager struct {
	wm WindowManager
}

// NewManager creates a new window manager based on the session type
func NewManager() (*Manager, error) {
	log := global.GetLogger()

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Info("Session type detected", "session", sessionType)

	var wm WindowManager
	var err error

	switch {
	case os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		log.Debug("Initializing compositor support", "type", "Hyprland")
		wm, err = NewHyprland()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Hyprland support: %w", err)
		}
	case os.Getenv("SWAYSOCK") != "":
		log.Debug("Initializing compositor support", "type", "Sway")
		wm, err = NewSway()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Sway support: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported compositor: only Hyprland and Sway are supported (session type %q)", sessionType)
	}

	log.Info("Window manager initialized", "name", wm.Name())
	return &Manager{wm: wm}, nil
}

// ListWindows wraps the underlying window manager's ListWindows method
func (m *Manager) ListWindows() ([]Window, error) {
	return m.wm.ListWindows()
}

// FocusWindow wraps the underlying window manager's FocusWindow method
func (m *Manager) FocusWindow(w Window) error {
	return m.wm.FocusWindow(w)
}

// GetWMName returns the name of the current window manager
func (m *Manager) GetWMName() string {
	return m.wm.Name()
}
