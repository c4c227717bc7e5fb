// Package mru persists the most recently used window pair so a quick
// activation can bounce back to the previous window across process
// restarts. The process exits after every activation, so the state must
// outlive it.
package mru

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
	"github.com/ScopeCreep-zip/open-sesame/pkg/paths"
)

// State holds the last two focused window ids. Previous is the window
// a quick switch returns to; Current is the one activated last.
type State struct {
	Previous string
	Current  string
}

// SaveActivatedWindow records an activation: the window focused before
// the switch becomes Previous and the newly activated one becomes
// Current. Activating the already-focused window is a no-op so the
// bounce target is not destroyed.
func SaveActivatedWindow(origin, activated string) error {
	if origin == activated || activated == "" {
		return nil
	}

	path, err := paths.MRUFile()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open mru file: %w", err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock mru file: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	state := State{Previous: origin, Current: activated}
	if _, err := f.WriteString(formatState(state)); err != nil {
		return fmt.Errorf("write mru file: %w", err)
	}
	return nil
}

// LoadState reads the persisted MRU pair. A missing or malformed file
// yields an empty state, not an error; there is nothing to recover.
func LoadState() (State, error) {
	path, err := paths.MRUFile()
	if err != nil {
		return State{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("open mru file: %w", err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH); err != nil {
		return State{}, fmt.Errorf("lock mru file: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	data := make([]byte, 4096)
	n, err := f.Read(data)
	if err != nil && n == 0 {
		return State{}, nil
	}
	return parseState(string(data[:n])), nil
}

// PreviousWindow returns the window id a quick switch should activate.
func PreviousWindow() string {
	state, err := LoadState()
	if err != nil {
		return ""
	}
	return state.Previous
}

// ReorderForMRU moves the window matching currentID to the end of the
// slice, preserving the order of the rest. Hint letters then favor the
// windows the user is most likely to switch to.
func ReorderForMRU(windows []wm.Window, currentID string) []wm.Window {
	if currentID == "" {
		return windows
	}
	for i, w := range windows {
		if w.ID == currentID {
			reordered := make([]wm.Window, 0, len(windows))
			reordered = append(reordered, windows[:i]...)
			reordered = append(reordered, windows[i+1:]...)
			reordered = append(reordered, w)
			return reordered
		}
	}
	return windows
}

func formatState(s State) string {
	return s.Previous + "\n" + s.Current + "\n"
}

func parseState(data string) State {
	lines := strings.Split(data, "\n")
	var s State
	if len(lines) > 0 {
		s.Previous = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		s.Current = strings.TrimSpace(lines[1])
	}
	return s
}
