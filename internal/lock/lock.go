// Package lock guards against concurrent instances with a file lock.
package lock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/ScopeCreep-zip/open-sesame/pkg/paths"
)

// Lock is a held instance lock. The flock is released when the process
// exits even if Release is never called, so a crash cannot wedge the
// next invocation.
type Lock struct {
	file *os.File
}

// TryAcquire takes the instance lock without blocking. held is false
// when another instance already owns it.
func TryAcquire() (lock *Lock, held bool, err error) {
	path, err := paths.LockFile()
	if err != nil {
		return nil, false, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, false, fmt.Errorf("open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("flock: %w", err)
	}

	// PID is informational only, the flock is what protects us
	f.Truncate(0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	return &Lock{file: f}, true, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	return l.file.Close()
}
