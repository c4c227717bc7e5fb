// Package app wires the state machine to the compositor, the IPC
// socket and a frontend, and runs the event loop for one switcher
// session.
package app

import (
	"fmt"
	"time"

	"github.com/ScopeCreep-zip/open-sesame/internal/hint"
	"github.com/ScopeCreep-zip/open-sesame/internal/ipc"
	"github.com/ScopeCreep-zip/open-sesame/internal/launcher"
	"github.com/ScopeCreep-zip/open-sesame/internal/mru"
	"github.com/ScopeCreep-zip/open-sesame/internal/state"
	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
)

// tickInterval drives timeout checks. Fine enough that the overlay and
// activation delays feel exact, coarse enough to stay off the profiler.
const tickInterval = 10 * time.Millisecond

// RenderState is the view snapshot handed to the frontend on redraw.
type RenderState struct {
	ShowOverlay       bool
	Hints             []hint.WindowHint
	SelectedHintIndex int
	Input             string
}

// Frontend is the rendering collaborator. Implementations push input
// events on Events and draw whatever RenderState describes.
type Frontend interface {
	// Events delivers key presses, alt release, frame callbacks and
	// configure events. Closing the channel ends the session.
	Events() <-chan state.Event
	Render(rs RenderState)
	Close()
}

// App owns one switcher session from activation to result.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	manager  WindowFocuser
	frontend Frontend
	launcher *launcher.Launcher

	hints            []hint.WindowHint
	previousWindowID string
	originWindowID   string

	ipcServer   *ipc.Server
	ipcCommands chan string
}

// WindowFocuser is the slice of wm.Manager the app needs.
type WindowFocuser interface {
	ListWindows() ([]wm.Window, error)
	FocusWindow(wm.Window) error
}

// New enumerates windows, assigns hints and prepares the session.
func New(cfg *config.Config, manager WindowFocuser, frontend Frontend) (*App, error) {
	log := global.GetLogger()

	windows, err := manager.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	origin := ""
	for _, w := range windows {
		if w.Focused {
			origin = w.ID
		}
	}

	assignment := hint.Assign(windows, cfg.KeyForApp)
	log.Debug("Hints assigned", "windows", len(windows), "origin", origin)

	return &App{
		cfg:              cfg,
		log:              log,
		manager:          manager,
		frontend:         frontend,
		launcher:         launcher.New(cfg),
		hints:            assignment.Hints,
		previousWindowID: mru.PreviousWindow(),
		originWindowID:   origin,
		ipcCommands:      make(chan string, 4),
	}, nil
}

// StartIPC binds the instance socket so repeated invocations cycle the
// selection instead of starting over.
func (a *App) StartIPC() error {
	server, err := ipc.NewServer(func(command string) error {
		select {
		case a.ipcCommands <- command:
			return nil
		default:
			return fmt.Errorf("event loop not consuming commands")
		}
	})
	if err != nil {
		return err
	}
	a.ipcServer = server
	go server.Serve()
	return nil
}

// Run drives the session to completion and performs the resulting
// activation. launcherMode opens the overlay immediately.
func (a *App) Run(launcherMode bool) error {
	defer a.shutdown()

	current := state.Initial(launcherMode, a.hints, a.previousWindowID)
	a.render(current)

	result, ok := a.loop(current)
	if !ok {
		// Frontend went away without a result
		return nil
	}
	return a.apply(result)
}

func (a *App) loop(current state.AppState) (state.ActivationResult, bool) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := a.frontend.Events()
	for {
		var event state.Event
		select {
		case ev, open := <-events:
			if !open {
				return state.ActivationResult{}, false
			}
			event = ev
		case command := <-a.ipcCommands:
			event = commandToEvent(command)
		case <-ticker.C:
			event = state.Event{Kind: state.EventTick}
		}

		transition := current.HandleEvent(event, a.cfg, a.hints, a.previousWindowID)
		current = transition.NewState

		for _, action := range transition.Actions {
			switch action {
			case state.ActionScheduleRedraw:
				a.render(current)
			case state.ActionExit:
				result, ok := current.Result()
				if !ok {
					a.log.Error("Exit action without a result", nil, "state", current.Kind().String())
					return state.ActivationResult{Kind: state.ResultCancelled}, true
				}
				return result, true
			}
		}
	}
}

// apply performs the activation exactly once.
func (a *App) apply(result state.ActivationResult) error {
	switch result.Kind {
	case state.ResultWindow:
		if result.Index < 0 || result.Index >= len(a.hints) {
			return fmt.Errorf("activation index %d out of range", result.Index)
		}
		return a.focusHint(a.hints[result.Index])

	case state.ResultQuickSwitch:
		if a.previousWindowID == "" {
			a.log.Debug("Quick switch with no previous window")
			return nil
		}
		for _, h := range a.hints {
			if h.WindowID == a.previousWindowID {
				return a.focusHint(h)
			}
		}
		a.log.Debug("Previous window no longer exists", "window", a.previousWindowID)
		return nil

	case state.ResultLaunch:
		a.log.Info("Launching application for key", "key", result.Key)
		return a.launcher.LaunchKey(result.Key)

	default:
		a.log.Debug("Session cancelled")
		return nil
	}
}

func (a *App) focusHint(h hint.WindowHint) error {
	a.log.Info("Activating window", "app", h.AppID, "window", h.WindowID)

	if err := a.manager.FocusWindow(wm.Window{ID: h.WindowID, AppID: h.AppID, Title: h.Title}); err != nil {
		return fmt.Errorf("failed to focus window: %w", err)
	}
	if err := mru.SaveActivatedWindow(a.originWindowID, h.WindowID); err != nil {
		// Activation already happened, a failed save only degrades the
		// next quick switch
		a.log.Warn("Failed to save MRU state", "error", err.Error())
	}
	return nil
}

func (a *App) render(s state.AppState) {
	a.frontend.Render(RenderState{
		ShowOverlay:       s.IsFullOverlay(),
		Hints:             a.hints,
		SelectedHintIndex: s.SelectedHintIndex(),
		Input:             s.Input(),
	})
}

func (a *App) shutdown() {
	if a.ipcServer != nil {
		a.ipcServer.Close()
	}
	a.frontend.Close()
}

func commandToEvent(command string) state.Event {
	if command == ipc.CommandCycleBackward {
		return state.Event{Kind: state.EventCycleBackward}
	}
	return state.Event{Kind: state.EventCycleForward}
}
