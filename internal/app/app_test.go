package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScopeCreep-zip/open-sesame/internal/mru"
	"github.com/ScopeCreep-zip/open-sesame/internal/state"
	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
)

type fakeWM struct {
	windows []wm.Window
	focused []string
}

func (f *fakeWM) ListWindows() ([]wm.Window, error) { return f.windows, nil }
func (f *fakeWM) FocusWindow(w wm.Window) error {
	f.focused = append(f.focused, w.ID)
	return nil
}

type fakeFrontend struct {
	events  chan state.Event
	renders []RenderState
	closed  bool
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{events: make(chan state.Event, 16)}
}

func (f *fakeFrontend) Events() <-chan state.Event { return f.events }
func (f *fakeFrontend) Render(rs RenderState)      { f.renders = append(f.renders, rs) }
func (f *fakeFrontend) Close()                     { f.closed = true }

func setupTest(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	log, err := logger.NewLogger(
		logger.WithLevel(zerolog.Disabled),
		logger.WithFile(filepath.Join(dir, "test.log")),
	)
	require.NoError(t, err)
	global.InitGlobals(config.Default(), log)
}

func testWindows() []wm.Window {
	return []wm.Window{
		{ID: "win-ff", AppID: "firefox", Title: "Mozilla Firefox"},
		{ID: "win-gh", AppID: "com.mitchellh.ghostty", Title: "ghostty"},
		{ID: "win-ed", AppID: "microsoft-edge", Title: "Edge", Focused: true},
	}
}

func newTestApp(t *testing.T, fwm *fakeWM, frontend *fakeFrontend) *App {
	t.Helper()
	a, err := New(config.Default(), fwm, frontend)
	require.NoError(t, err)
	return a
}

func TestNewAssignsHintsAndOrigin(t *testing.T) {
	setupTest(t)

	a := newTestApp(t, &fakeWM{windows: testWindows()}, newFakeFrontend())

	require.Len(t, a.hints, 3)
	assert.Equal(t, "win-ed", a.originWindowID)
	// Config keys map firefox to f, ghostty to g, edge to e
	assert.Equal(t, "f", a.hints[0].Hint.String())
	assert.Equal(t, "g", a.hints[1].Hint.String())
	assert.Equal(t, "e", a.hints[2].Hint.String())
}

func TestRunHintActivation(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	// Launcher mode: overlay up, type 'g', wait out the activation delay
	frontend.events <- state.KeyPress(0x67, false)

	done := make(chan error, 1)
	go func() { done <- a.Run(true) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not finish")
	}

	require.Equal(t, []string{"win-gh"}, fwm.focused)
	assert.True(t, frontend.closed)

	// MRU records origin -> activated
	st, err := mru.LoadState()
	require.NoError(t, err)
	assert.Equal(t, "win-ed", st.Previous)
	assert.Equal(t, "win-gh", st.Current)
}

func TestRunEnterActivatesSelected(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	frontend.events <- state.KeyPress(state.KeyTab, false)
	frontend.events <- state.KeyPress(state.KeyReturn, false)

	require.NoError(t, a.Run(true))
	assert.Equal(t, []string{"win-gh"}, fwm.focused)
}

func TestRunEscapeCancels(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	frontend.events <- state.KeyPress(state.KeyEscape, false)

	require.NoError(t, a.Run(true))
	assert.Empty(t, fwm.focused, "cancel must not focus anything")
	assert.True(t, frontend.closed)
}

func TestRunQuickSwitchWithPrevious(t *testing.T) {
	setupTest(t)
	require.NoError(t, mru.SaveActivatedWindow("win-gh", "win-ed"))

	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)
	require.Equal(t, "win-gh", a.previousWindowID)

	// Switcher mode with an immediate alt release
	frontend.events <- state.Event{Kind: state.EventAltReleased}

	require.NoError(t, a.Run(false))
	assert.Equal(t, []string{"win-gh"}, fwm.focused)
}

func TestRunClosedEventChannel(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	close(frontend.events)

	require.NoError(t, a.Run(false))
	assert.Empty(t, fwm.focused)
	assert.True(t, frontend.closed)
}

func TestRunRendersInitialState(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	frontend.events <- state.KeyPress(state.KeyEscape, false)
	require.NoError(t, a.Run(true))

	require.NotEmpty(t, frontend.renders)
	first := frontend.renders[0]
	assert.True(t, first.ShowOverlay, "launcher mode opens with the overlay")
	assert.Len(t, first.Hints, 3)
}

func TestIPCCycleCommandsDriveSelection(t *testing.T) {
	setupTest(t)
	fwm := &fakeWM{windows: testWindows()}
	frontend := newFakeFrontend()
	a := newTestApp(t, fwm, frontend)

	a.ipcCommands <- "cycle_forward"

	done := make(chan error, 1)
	go func() { done <- a.Run(true) }()

	// The cycle command is queued before Run starts; give the loop time
	// to drain it before pressing Return.
	time.Sleep(100 * time.Millisecond)
	frontend.events <- state.KeyPress(state.KeyReturn, false)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not finish")
	}
	assert.Equal(t, []string{"win-gh"}, fwm.focused, "cycle moved selection to index 1")
}

func TestCommandToEvent(t *testing.T) {
	assert.Equal(t, state.EventCycleForward, commandToEvent("cycle_forward").Kind)
	assert.Equal(t, state.EventCycleBackward, commandToEvent("cycle_backward").Kind)
}
