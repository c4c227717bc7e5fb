package wm

import "strings"

// WindowManager enumerates and focuses toplevel windows.
type WindowManager interface {
	// ListWindows returns all toplevel windows in MRU order, with the
	// currently focused window moved to the end of the list.
	ListWindows() ([]Window, error)
	// FocusWindow brings the specified window to front
	FocusWindow(Window) error
	// Name returns the WM name for logging/display
	Name() string
}

// Window is a toplevel window reported by the compositor.
type Window struct {
	// ID is the compositor handle used for activation
	ID string
	// AppID is the application identifier (e.g. "firefox",
	// "com.mitchellh.ghostty")
	AppID string
	Title string
	// Focused marks the window that had focus at enumeration time
	Focused bool
}

// LastSegment returns the final dot-segment of an app id.
// "com.mitchellh.ghostty" yields "ghostty".
func LastSegment(appID string) string {
	if i := strings.LastIndexByte(appID, '.'); i >= 0 {
		return appID[i+1:]
	}
	return appID
}
