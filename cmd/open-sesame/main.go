package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ScopeCreep-zip/open-sesame/internal/app"
	"github.com/ScopeCreep-zip/open-sesame/internal/frontend"
	"github.com/ScopeCreep-zip/open-sesame/internal/ipc"
	"github.com/ScopeCreep-zip/open-sesame/internal/lock"
	"github.com/ScopeCreep-zip/open-sesame/internal/wm"
	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
	"github.com/ScopeCreep-zip/open-sesame/pkg/notify"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file (skips the default merge chain)")
	debug := flag.Bool("debug", false, "enable debug logging")
	launcherMode := flag.Bool("launcher", false, "open the window list immediately")
	backward := flag.Bool("backward", false, "cycle selection backward in the running instance")
	printConfig := flag.Bool("print-config", false, "print the default configuration and exit")
	validateConfig := flag.Bool("validate-config", false, "validate the configuration and exit")
	listWindows := flag.Bool("list-windows", false, "print the current window list and exit")
	flag.Parse()

	if *printConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	// Setup logging level
	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Debug("Starting open-sesame",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	// Load configuration
	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFromPaths([]string{*configPath})
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", *configPath)
		os.Exit(1)
	}
	log.Debug("Configuration loaded", "key_count", len(cfg.Keys))

	global.InitGlobals(cfg, log)

	if *validateConfig {
		os.Exit(runValidate(cfg))
	}

	if *listWindows {
		os.Exit(runListWindows())
	}

	// A running instance owns the lock; this invocation only steers it
	held, release := acquireOrCycle(*backward)
	if !held {
		return
	}
	defer release()

	runSession(cfg, *launcherMode)
}

func runValidate(cfg *config.Config) int {
	issues := config.Validate(cfg)
	failed := false
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", issue.Severity, issue.Message)
		if issue.Severity == config.SeverityError {
			failed = true
		}
	}
	if failed {
		return 1
	}
	fmt.Println("Configuration OK")
	return 0
}

func runListWindows() int {
	log := global.GetLogger()

	manager, err := wm.NewManager()
	if err != nil {
		log.Error("Failed to initialize window manager", err)
		return 1
	}
	windows, err := manager.ListWindows()
	if err != nil {
		log.Error("Failed to list windows", err)
		return 1
	}
	for _, w := range windows {
		focused := " "
		if w.Focused {
			focused = "*"
		}
		fmt.Printf("%s %-20s %-30s %s\n", focused, w.ID, w.AppID, w.Title)
	}
	return 0
}

// acquireOrCycle takes the instance lock, or forwards a cycle command
// to the instance that has it.
func acquireOrCycle(backward bool) (held bool, release func()) {
	log := global.GetLogger()

	instanceLock, held, err := lock.TryAcquire()
	if err != nil {
		log.Fatal("Failed to acquire instance lock", err)
	}
	if held {
		return true, func() { instanceLock.Release() }
	}

	command := ipc.CommandCycleForward
	if backward {
		command = ipc.CommandCycleBackward
	}
	log.Debug("Instance already running, sending command", "command", command)
	if _, err := ipc.SendCommand(command); err != nil {
		log.Error("Failed to reach running instance", err)
		os.Exit(1)
	}
	return false, nil
}

func runSession(cfg *config.Config, launcherMode bool) {
	log := global.GetLogger()

	manager, err := wm.NewManager()
	if err != nil {
		log.Fatal("Failed to initialize window manager", err)
	}

	term, err := frontend.NewTerminal()
	if err != nil {
		log.Fatal("Failed to initialize frontend", err)
	}

	session, err := app.New(cfg, manager, term)
	if err != nil {
		log.Fatal("Failed to create session", err)
	}
	if err := session.StartIPC(); err != nil {
		log.Error("Failed to start IPC server", err)
	}

	if err := session.Run(launcherMode); err != nil {
		notifier := global.GetNotifier()
		notifier.Show(fmt.Sprintf("open-sesame: %v", err), notify.Error)
		log.Fatal("Session failed", err)
	}
}
