// Package launcher spawns applications detached from the switcher
// process, with environment layering from .env files.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/global"
)

// Launcher executes launch configs from key bindings.
type Launcher struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Launcher {
	return &Launcher{cfg: cfg}
}

// LaunchKey executes the launch config bound to key. It is an error if
// the key has no launch config.
func (l *Launcher) LaunchKey(key string) error {
	launch, ok := l.cfg.LaunchConfig(key)
	if !ok {
		return fmt.Errorf("no launch config for key %q", key)
	}
	return l.Execute(launch)
}

// Execute spawns the command detached, so it survives the switcher
// exiting. The environment layers in increasing precedence: inherited
// process env, global env files, per-app env files, explicit env
// entries.
func (l *Launcher) Execute(launch *config.LaunchConfig) error {
	log := global.GetLogger()

	env, err := l.buildEnvironment(launch)
	if err != nil {
		return err
	}

	path, err := exec.LookPath(launch.Command)
	if err != nil {
		return fmt.Errorf("command not found: %w", err)
	}

	cmd := exec.Command(path, launch.Args...)
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// New session detaches from our controlling terminal
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	log.Info("Launching application", "command", launch.Command, "args", strings.Join(launch.Args, " "))

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", launch.Command, err)
	}

	// Reap the child when it exits; we never wait for it
	go cmd.Wait()
	return nil
}

func (l *Launcher) buildEnvironment(launch *config.LaunchConfig) ([]string, error) {
	merged := environToMap(os.Environ())

	for _, file := range l.cfg.Settings.EnvFiles {
		if err := applyEnvFile(merged, file); err != nil {
			return nil, err
		}
	}
	for _, file := range launch.EnvFiles {
		if err := applyEnvFile(merged, file); err != nil {
			return nil, err
		}
	}
	for k, v := range launch.Env {
		merged[k] = v
	}

	return mapToEnviron(merged), nil
}

// applyEnvFile overlays one .env file onto env. A missing file is
// skipped; the config may list files that only exist on some machines.
func applyEnvFile(env map[string]string, path string) error {
	log := global.GetLogger()

	expanded := expandHome(path)
	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		log.Debug("Env file not found, skipping", "path", expanded)
		return nil
	}

	vars, err := godotenv.Read(expanded)
	if err != nil {
		return fmt.Errorf("failed to parse env file %s: %w", expanded, err)
	}
	for k, v := range vars {
		env[k] = v
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

func environToMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if i := strings.IndexByte(entry, '='); i >= 0 {
			env[entry[:i]] = entry[i+1:]
		}
	}
	return env
}

func mapToEnviron(env map[string]string) []string {
	environ := make([]string, 0, len(env))
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)
	return environ
}
