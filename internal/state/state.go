// Package state implements the application lifecycle state machine.
//
// Pure state transitions with no side effects. All state is explicit,
// all transitions go through HandleEvent, and all side effects are
// returned as Actions for the event loop to execute. Any (state, event)
// pair not modeled below is an identity transition with no actions: the
// machine is a total function and never errors.
package state

import (
	"time"

	"github.com/ScopeCreep-zip/open-sesame/internal/hint"
	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/timeout"
)

// Kind discriminates AppState variants.
type Kind int

const (
	// KindBorderOnly is the border-only phase before the overlay
	// appears.
	KindBorderOnly Kind = iota
	// KindFullOverlay shows the window list with hints.
	KindFullOverlay
	// KindPendingActivation holds an exact match while the activation
	// delay runs, so a longer hint can still be typed.
	KindPendingActivation
	// KindExiting is terminal; the result is ready to consume.
	KindExiting
)

func (k Kind) String() string {
	switch k {
	case KindBorderOnly:
		return "BorderOnly"
	case KindFullOverlay:
		return "FullOverlay"
	case KindPendingActivation:
		return "PendingActivation"
	case KindExiting:
		return "Exiting"
	default:
		return "Unknown"
	}
}

// ResultKind discriminates ActivationResult variants.
type ResultKind int

const (
	// ResultWindow activates the window at a hint index.
	ResultWindow ResultKind = iota
	// ResultQuickSwitch is a quick Alt+Tab with no resolvable target.
	ResultQuickSwitch
	// ResultLaunch launches the app configured for a key.
	ResultLaunch
	// ResultCancelled means the user backed out.
	ResultCancelled
)

// ActivationResult is the outcome of a session.
type ActivationResult struct {
	Kind ResultKind
	// Hint index for ResultWindow
	Index int
	// Key for ResultLaunch
	Key string
}

// WindowResult builds a ResultWindow value.
func WindowResult(index int) ActivationResult {
	return ActivationResult{Kind: ResultWindow, Index: index}
}

// EventKind discriminates Event variants.
type EventKind int

const (
	EventKeyPress EventKind = iota
	EventAltReleased
	EventTick
	EventFrameCallback
	EventCycleForward
	EventCycleBackward
	EventConfigure
)

// Event is an input to the state machine.
type Event struct {
	Kind   EventKind
	Keysym Keysym
	Shift  bool
	Width  uint32
	Height uint32
}

// KeyPress builds a keyboard event.
func KeyPress(keysym Keysym, shift bool) Event {
	return Event{Kind: EventKeyPress, Keysym: keysym, Shift: shift}
}

// Action is a side effect for the event loop to execute.
type Action int

const (
	// ActionScheduleRedraw requests a redraw on the next frame.
	ActionScheduleRedraw Action = iota
	// ActionExit stops the event loop.
	ActionExit
)

// Transition is the result of handling one event.
type Transition struct {
	NewState AppState
	Actions  []Action
}

// AppState is the lifecycle state. Exactly one variant is active,
// selected by kind; transitions always produce a fresh value.
type AppState struct {
	kind Kind

	// BorderOnly
	startTime  time.Time
	frameCount uint32

	// FullOverlay and PendingActivation. selectedHintIndex indexes the
	// original hints slice, never a filtered view.
	selectedHintIndex int
	input             string
	timeout           timeout.Tracker

	// Exiting
	result ActivationResult
}

// BorderOnly builds the border-only state.
func BorderOnly(startTime time.Time, frameCount uint32) AppState {
	return AppState{kind: KindBorderOnly, startTime: startTime, frameCount: frameCount}
}

// FullOverlay builds the overlay state.
func FullOverlay(selectedHintIndex int, input string) AppState {
	return AppState{kind: KindFullOverlay, selectedHintIndex: selectedHintIndex, input: input}
}

// PendingActivation builds the pending-activation state.
func PendingActivation(hintIndex int, input string, t timeout.Tracker) AppState {
	return AppState{kind: KindPendingActivation, selectedHintIndex: hintIndex, input: input, timeout: t}
}

// Exiting builds the terminal state.
func Exiting(result ActivationResult) AppState {
	return AppState{kind: KindExiting, result: result}
}

// Initial creates the starting state. Launcher mode opens straight into
// the full overlay with the previous window preselected, so a quick
// Alt+Space release behaves like a quick Alt+Tab. Switcher mode starts
// border-only.
func Initial(launcherMode bool, hints []hint.WindowHint, previousWindowID string) AppState {
	if launcherMode {
		selected := 0
		if idx, ok := hintIndexForWindow(hints, previousWindowID); ok {
			selected = idx
		}
		return FullOverlay(selected, "")
	}
	return BorderOnly(time.Now(), 0)
}

// Kind returns the active variant.
func (s AppState) Kind() Kind { return s.kind }

// SelectedHintIndex returns the hint index for rendering.
func (s AppState) SelectedHintIndex() int {
	switch s.kind {
	case KindFullOverlay, KindPendingActivation:
		return s.selectedHintIndex
	default:
		return 0
	}
}

// Input returns the current input buffer for rendering.
func (s AppState) Input() string {
	switch s.kind {
	case KindFullOverlay, KindPendingActivation:
		return s.input
	default:
		return ""
	}
}

// FrameCount returns the frames rendered in the border phase.
func (s AppState) FrameCount() uint32 { return s.frameCount }

// IsFullOverlay reports whether the window list is displayed.
func (s AppState) IsFullOverlay() bool {
	return s.kind == KindFullOverlay || s.kind == KindPendingActivation
}

// IsExiting reports whether the state is terminal.
func (s AppState) IsExiting() bool { return s.kind == KindExiting }

// Result returns the activation result when exiting.
func (s AppState) Result() (ActivationResult, bool) {
	if s.kind != KindExiting {
		return ActivationResult{}, false
	}
	return s.result, true
}

// HandleEvent processes one event and returns the new state with the
// actions to execute. It performs no I/O; waiting is expressed through
// repeated Tick events supplied by the caller.
func (s AppState) HandleEvent(event Event, cfg *config.Config, hints []hint.WindowHint, previousWindowID string) Transition {
	switch s.kind {
	case KindBorderOnly:
		return s.handleBorderOnly(event, cfg, hints, previousWindowID)
	case KindFullOverlay:
		return s.handleFullOverlay(event, cfg, hints)
	case KindPendingActivation:
		return s.handlePendingActivation(event, cfg, hints)
	default:
		// Exiting is terminal
		return unchanged(s)
	}
}

func (s AppState) handleBorderOnly(event Event, cfg *config.Config, hints []hint.WindowHint, previousWindowID string) Transition {
	switch event.Kind {
	case EventFrameCallback:
		return Transition{NewState: BorderOnly(s.startTime, s.frameCount+1)}

	case EventTick:
		elapsed := time.Since(s.startTime)
		delay := time.Duration(cfg.Settings.OverlayDelay) * time.Millisecond

		// Both the delay and a minimum of two rendered frames gate the
		// phase transition; an early tick with a stale buffer would
		// flash an unconfigured surface.
		if elapsed >= delay && s.frameCount >= 2 {
			selected := 0
			if idx, ok := hintIndexForWindow(hints, previousWindowID); ok {
				selected = idx
			}
			return redraw(FullOverlay(selected, ""))
		}
		return unchanged(s)

	case EventAltReleased:
		elapsed := time.Since(s.startTime)
		threshold := time.Duration(cfg.Settings.QuickSwitchThreshold) * time.Millisecond

		var result ActivationResult
		if elapsed < threshold {
			switch {
			case previousWindowID != "":
				if idx, ok := hintIndexForWindow(hints, previousWindowID); ok {
					result = WindowResult(idx)
				} else if len(hints) > 0 {
					// Previous window is gone, fall back to the anchor
					result = WindowResult(0)
				} else {
					result = ActivationResult{Kind: ResultQuickSwitch}
				}
			default:
				result = ActivationResult{Kind: ResultQuickSwitch}
			}
		} else {
			// Non-quick release activates the first window
			result = WindowResult(0)
		}
		return exit(Exiting(result))

	case EventKeyPress:
		return s.handleBorderOnlyKey(event, cfg, hints)

	case EventCycleForward:
		return redraw(FullOverlay(minInt(1, maxInt(len(hints)-1, 0)), ""))

	case EventCycleBackward:
		return redraw(FullOverlay(maxInt(len(hints)-1, 0), ""))

	default:
		return unchanged(s)
	}
}

func (s AppState) handleBorderOnlyKey(event Event, cfg *config.Config, hints []hint.WindowHint) Transition {
	switch {
	case isTab(event.Keysym):
		idx := minInt(1, maxInt(len(hints)-1, 0))
		if event.Shift {
			idx = maxInt(len(hints)-1, 0)
		}
		return redraw(FullOverlay(idx, ""))

	case event.Keysym == KeyEscape:
		return exit(Exiting(ActivationResult{Kind: ResultCancelled}))
	}

	c, ok := KeysymToChar(event.Keysym)
	if !ok {
		// Non-character key reveals the overlay without input
		return redraw(FullOverlay(0, ""))
	}

	// First keypress during the border phase is captured, not lost
	input := string(c)
	matcher := hint.NewMatcher(hints)
	result := matcher.MatchInput(input)
	switch result.Kind {
	case hint.MatchExact:
		t := timeout.New(cfg.Settings.ActivationDelay)
		t.Start()
		return redraw(PendingActivation(result.Index, input, t))

	case hint.MatchPartial:
		return redraw(FullOverlay(0, input))

	default:
		if _, hasLaunch := cfg.LaunchConfig(input); hasLaunch {
			return exit(Exiting(ActivationResult{Kind: ResultLaunch, Key: input}))
		}
		// Invalid key: show the overlay with empty input
		return redraw(FullOverlay(0, ""))
	}
}

func (s AppState) handleFullOverlay(event Event, cfg *config.Config, hints []hint.WindowHint) Transition {
	switch event.Kind {
	case EventKeyPress:
		return s.handleFullOverlayKey(event, cfg, hints)

	case EventAltReleased:
		return exit(Exiting(WindowResult(s.selectedHintIndex)))

	case EventCycleForward:
		return redraw(FullOverlay(cycleIndex(s.selectedHintIndex, len(hints), true), s.input))

	case EventCycleBackward:
		return redraw(FullOverlay(cycleIndex(s.selectedHintIndex, len(hints), false), s.input))

	default:
		return unchanged(s)
	}
}

func (s AppState) handleFullOverlayKey(event Event, cfg *config.Config, hints []hint.WindowHint) Transition {
	switch {
	case isTab(event.Keysym):
		idx := cycleIndex(s.selectedHintIndex, len(hints), !event.Shift)
		return redraw(FullOverlay(idx, s.input))

	case event.Keysym == KeyDown || event.Keysym == KeyKPDown:
		return redraw(FullOverlay(cycleIndex(s.selectedHintIndex, len(hints), true), s.input))

	case event.Keysym == KeyUp || event.Keysym == KeyKPUp:
		return redraw(FullOverlay(cycleIndex(s.selectedHintIndex, len(hints), false), s.input))

	case event.Keysym == KeyReturn || event.Keysym == KeyKPEnter:
		return exit(Exiting(WindowResult(s.selectedHintIndex)))

	case event.Keysym == KeyEscape:
		return exit(Exiting(ActivationResult{Kind: ResultCancelled}))

	case event.Keysym == KeyBackSpace:
		input := s.input
		if len(input) > 0 {
			input = input[:len(input)-1]
		}
		return redraw(FullOverlay(s.selectedHintIndex, input))
	}

	c, ok := KeysymToChar(event.Keysym)
	if !ok {
		return unchanged(s)
	}

	newInput := s.input + string(c)
	matcher := hint.NewMatcher(hints)
	result := matcher.MatchInput(newInput)
	switch result.Kind {
	case hint.MatchExact:
		t := timeout.New(cfg.Settings.ActivationDelay)
		t.Start()
		return redraw(PendingActivation(result.Index, newInput, t))

	case hint.MatchPartial:
		return redraw(FullOverlay(s.selectedHintIndex, newInput))

	default:
		if _, hasLaunch := cfg.LaunchConfig(string(c)); hasLaunch {
			return exit(Exiting(ActivationResult{Kind: ResultLaunch, Key: string(c)}))
		}
		// Invalid input: keep the previous input, no redraw
		return unchanged(FullOverlay(s.selectedHintIndex, s.input))
	}
}

func (s AppState) handlePendingActivation(event Event, cfg *config.Config, hints []hint.WindowHint) Transition {
	switch event.Kind {
	case EventTick:
		if s.timeout.HasElapsed() {
			return exit(Exiting(WindowResult(s.selectedHintIndex)))
		}
		return unchanged(s)

	case EventKeyPress:
		return s.handlePendingActivationKey(event, cfg, hints)

	case EventAltReleased:
		// Immediate activation, the delay is only for further typing
		return exit(Exiting(WindowResult(s.selectedHintIndex)))

	default:
		return unchanged(s)
	}
}

func (s AppState) handlePendingActivationKey(event Event, cfg *config.Config, hints []hint.WindowHint) Transition {
	if c, ok := KeysymToChar(event.Keysym); ok {
		newInput := s.input + string(c)
		matcher := hint.NewMatcher(hints)
		result := matcher.MatchInput(newInput)
		switch result.Kind {
		case hint.MatchExact:
			// A longer hint matched: restart the timeout on the new
			// target
			t := timeout.New(cfg.Settings.ActivationDelay)
			t.Start()
			return redraw(PendingActivation(result.Index, newInput, t))

		case hint.MatchPartial:
			return redraw(FullOverlay(s.selectedHintIndex, newInput))

		default:
			// Keystroke ignored, the pending match stands
			return unchanged(s)
		}
	}

	switch event.Keysym {
	case KeyEscape:
		return exit(Exiting(ActivationResult{Kind: ResultCancelled}))

	case KeyBackSpace:
		input := s.input
		if len(input) > 0 {
			input = input[:len(input)-1]
		}
		return redraw(FullOverlay(s.selectedHintIndex, input))

	default:
		return unchanged(s)
	}
}

// hintIndexForWindow resolves a window id to its hint index.
func hintIndexForWindow(hints []hint.WindowHint, windowID string) (int, bool) {
	if windowID == "" {
		return 0, false
	}
	for i, h := range hints {
		if h.WindowID == windowID {
			return i, true
		}
	}
	return 0, false
}

func unchanged(s AppState) Transition {
	return Transition{NewState: s}
}

func redraw(s AppState) Transition {
	return Transition{NewState: s, Actions: []Action{ActionScheduleRedraw}}
}

func exit(s AppState) Transition {
	return Transition{NewState: s, Actions: []Action{ActionExit}}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
