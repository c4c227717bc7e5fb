package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
)

type Sway struct {
	log *logger.Logger
}

// swayNode is the subset of `swaymsg -t get_tree` output we walk.
type swayNode struct {
	ID               int64  `json:"id"`
	Type             string `json:"type"`
	Name             string `json:"name"`
	AppID            string `json:"app_id"`
	Focused          bool   `json:"focused"`
	WindowProperties *struct {
		Class string `json:"class"`
	} `json:"window_properties,omitempty"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

func NewSway() (*Sway, error) {
	log := global.GetLogger()

	path, err := exec.LookPath("swaymsg")
	if err != nil {
		log.Error("swaymsg not found in PATH", err)
		return nil, fmt.Errorf("swaymsg not found in PATH: %w", err)
	}
	log.Debug("Found swaymsg", "path", path)

	return &Sway{log: log}, nil
}

func (s *Sway) Name() string {
	return "Sway"
}

// ListWindows walks the sway tree for leaf containers. Sway does not
// expose focus history, so the order is tree order with the focused
// window moved to the end.
func (s *Sway) ListWindows() ([]Window, error) {
	cmd := exec.Command("swaymsg", "-t", "get_tree")
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.log.Error("Failed to execute swaymsg", err, "output", string(output))
		return nil, fmt.Errorf("swaymsg error: %w", err)
	}

	var root swayNode
	if err := json.Unmarshal(output, &root); err != nil {
		s.log.Error("Failed to parse swaymsg output", err, "output", string(output))
		return nil, fmt.Errorf("failed to parse swaymsg output: %w", err)
	}

	return moveFocusedToEnd(collectSwayWindows(&root, nil)), nil
}

func collectSwayWindows(node *swayNode, windows []Window) []Window {
	isLeaf := len(node.Nodes) == 0 && len(node.FloatingNodes) == 0
	if isLeaf && (node.Type == "con" || node.Type == "floating_con") {
		appID := node.AppID
		if appID == "" && node.WindowProperties != nil {
			// XWayland windows report a class instead of an app_id
			appID = node.WindowProperties.Class
		}
		if appID != "" || node.Name != "" {
			windows = append(windows, Window{
				ID:      fmt.Sprintf("%d", node.ID),
				AppID:   appID,
				Title:   node.Name,
				Focused: node.Focused,
			})
		}
		return windows
	}

	for i := range node.Nodes {
		windows = collectSwayWindows(&node.Nodes[i], windows)
	}
	for i := range node.FloatingNodes {
		windows = collectSwayWindows(&node.FloatingNodes[i], windows)
	}
	return windows
}

func (s *Sway) FocusWindow(w Window) error {
	s.log.Debug("Focusing window", "con_id", w.ID)

	criteria := fmt.Sprintf("[con_id=%s]", w.ID)
	cmd := exec.Command("swaymsg", criteria, "focus")
	if output, err := cmd.CombinedOutput(); err != nil {
		s.log.Error("Failed to focus window", err, "output", string(output))
		return fmt.Errorf("failed to focus window: %w", err)
	}
	return nil
}
