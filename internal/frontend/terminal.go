// Package frontend provides a terminal frontend: raw-mode key input on
// stdin and an ANSI-rendered window list on stderr. It serves launcher
// mode, where no modifier tracking is needed.
package frontend

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/ScopeCreep-zip/open-sesame/internal/app"
	"github.com/ScopeCreep-zip/open-sesame/internal/state"
	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
)

type Terminal struct {
	events    chan state.Event
	oldTermio *unix.Termios
	done      chan struct{}
}

// NewTerminal puts stdin into raw mode and starts the key reader.
func NewTerminal() (*Terminal, error) {
	termio, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("stdin is not a terminal: %w", err)
	}

	raw := *termio
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	t := &Terminal{
		events:    make(chan state.Event, 16),
		oldTermio: termio,
		done:      make(chan struct{}),
	}
	go t.readKeys()

	// The overlay delay gate wants two rendered frames; a terminal
	// paints synchronously, so report them immediately.
	t.events <- state.Event{Kind: state.EventFrameCallback}
	t.events <- state.Event{Kind: state.EventFrameCallback}

	return t, nil
}

func (t *Terminal) Events() <-chan state.Event { return t.events }

func (t *Terminal) Close() {
	close(t.done)
	if t.oldTermio != nil {
		unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, t.oldTermio)
	}
	fmt.Fprint(os.Stderr, "\x1b[0m\n")
}

// Render paints the window list. Selected row inverted, matched hint
// prefix highlighted.
func (t *Terminal) Render(rs app.RenderState) {
	if !rs.ShowOverlay {
		return
	}

	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H") // clear and home
	for i, h := range rs.Hints {
		marker := "  "
		style := ""
		if i == rs.SelectedHintIndex {
			marker = "> "
			style = "\x1b[7m"
		}
		fmt.Fprintf(&b, "%s%s[%s] %s - %s\x1b[0m\r\n", marker, style, h.Hint.String(), h.AppID, h.Title)
	}
	if rs.Input != "" {
		fmt.Fprintf(&b, "\r\n%s", rs.Input)
	}
	os.Stderr.WriteString(b.String())
}

func (t *Terminal) readKeys() {
	defer close(t.events)

	buf := make([]byte, 8)
	for {
		select {
		case <-t.done:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}

		event, ok := decodeKey(buf[:n])
		if !ok {
			continue
		}

		select {
		case t.events <- event:
		case <-t.done:
			return
		}
	}
}

// decodeKey maps a raw byte sequence to a key event.
func decodeKey(seq []byte) (state.Event, bool) {
	switch {
	case len(seq) == 1:
		switch seq[0] {
		case 0x1b:
			return state.KeyPress(state.KeyEscape, false), true
		case '\t':
			return state.KeyPress(state.KeyTab, false), true
		case '\r', '\n':
			return state.KeyPress(state.KeyReturn, false), true
		case 0x7f, 0x08:
			return state.KeyPress(state.KeyBackSpace, false), true
		}
		if seq[0] >= 0x20 && seq[0] <= 0x7e {
			shift := seq[0] >= 'A' && seq[0] <= 'Z'
			return state.KeyPress(state.Keysym(seq[0]), shift), true
		}
		return state.Event{}, false

	case len(seq) == 3 && seq[0] == 0x1b && seq[1] == '[':
		switch seq[2] {
		case 'A':
			return state.KeyPress(state.KeyUp, false), true
		case 'B':
			return state.KeyPress(state.KeyDown, false), true
		case 'Z':
			return state.KeyPress(state.KeyTab, true), true
		}
	}

	global.GetLogger().Debug("Unhandled key sequence", "bytes", fmt.Sprintf("%x", seq))
	return state.Event{}, false
}
