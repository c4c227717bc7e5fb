package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"

	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
)

type Hyprland struct {
	log *logger.Logger
}

// hyprlandClient is the subset of `hyprctl clients -j` output we need.
// focusHistoryID is 0 for the focused window and increases with
// staleness, which gives us MRU order for free.
type hyprlandClient struct {
	Address        string `json:"address"`
	Class          string `json:"class"`
	Title          string `json:"title"`
	Mapped         bool   `json:"mapped"`
	Hidden         bool   `json:"hidden"`
	FocusHistoryID int    `json:"focusHistoryID"`
	Workspace      struct {
		ID int `json:"id"`
	} `json:"workspace"`
}

func NewHyprland() (*Hyprland, error) {
	log := global.GetLogger()

	path, err := exec.LookPath("hyprctl")
	if err != nil {
		log.Error("hyprctl not found in PATH", err)
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)

	return &Hyprland{log: log}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

// ListWindows enumerates toplevel windows in MRU order with the
// focused window moved to the end, so hint letters stay on the windows
// the user actually switches to.
func (h *Hyprland) ListWindows() ([]Window, error) {
	cmd := exec.Command("hyprctl", "clients", "-j")
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return nil, fmt.Errorf("hyprctl error: %w", err)
	}

	var clients []hyprlandClient
	if err := json.Unmarshal(output, &clients); err != nil {
		h.log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	return windowsFromClients(clients), nil
}

func windowsFromClients(clients []hyprlandClient) []Window {
	visible := make([]hyprlandClient, 0, len(clients))
	for _, c := range clients {
		// Special workspaces (scratchpads) have negative ids
		if !c.Mapped || c.Hidden || c.Workspace.ID < 0 {
			continue
		}
		visible = append(visible, c)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].FocusHistoryID < visible[j].FocusHistoryID
	})

	windows := make([]Window, 0, len(visible))
	for _, c := range visible {
		windows = append(windows, Window{
			ID:      c.Address,
			AppID:   c.Class,
			Title:   c.Title,
			Focused: c.FocusHistoryID == 0,
		})
	}
	return moveFocusedToEnd(windows)
}

func (h *Hyprland) FocusWindow(w Window) error {
	h.log.Debug("Focusing window", "address", w.ID)

	cmd := exec.Command("hyprctl", "dispatch", "focuswindow", "address:"+w.ID)
	if output, err := cmd.CombinedOutput(); err != nil {
		h.log.Error("Failed to focus window", err, "output", string(output))
		return fmt.Errorf("failed to focus window: %w", err)
	}
	return nil
}

// moveFocusedToEnd keeps the focused window last so the first hint
// always points at the most recent other window.
func moveFocusedToEnd(windows []Window) []Window {
	for i, w := range windows {
		if w.Focused {
			reordered := make([]Window, 0, len(windows))
			reordered = append(reordered, windows[:i]...)
			reordered = append(reordered, windows[i+1:]...)
			reordered = append(reordered, w)
			return reordered
		}
	}
	return windows
}
