// Package notify delivers desktop notifications with graceful fallbacks.
package notify

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/godbus/dbus/v5"

	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

const (
	dbusDest   = "org.freedesktop.Notifications"
	dbusPath   = "/org/freedesktop/Notifications"
	dbusMethod = "org.freedesktop.Notifications.Notify"
)

// NotifyService handles system notifications
type NotifyService struct {
	log     *logger.Logger
	appName string
}

// NewNotifyService creates a new notification service
func NewNotifyService(log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:     log,
		appName: "open-sesame",
	}
}

// Show displays a notification of the specified type. It tries the
// desktop notification daemon over D-Bus first, then notify-send, and
// finally the terminal when one is attached.
func (n *NotifyService) Show(message string, nType NotificationType) error {
	err := n.sendOverDBus(message, nType)
	if err == nil {
		return nil
	}
	n.log.Debug("D-Bus notification failed", "error", err.Error())

	if err := n.trySendCommand(message, nType); err == nil {
		return nil
	}

	if isRunningInTerminal() {
		return n.printToTerminal(message, nType)
	}

	return fmt.Errorf("no notification mechanism available")
}

func (n *NotifyService) sendOverDBus(message string, nType NotificationType) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}

	urgency := byte(1)
	icon := "dialog-information"
	if nType == Error {
		urgency = 2
		icon = "dialog-error"
	}

	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
	expireTimeoutMS := int32(5000)

	obj := conn.Object(dbusDest, dbus.ObjectPath(dbusPath))
	call := obj.Call(dbusMethod, 0,
		n.appName, uint32(0), icon, n.appName, message,
		[]string{}, hints, expireTimeoutMS)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	return nil
}

func (n *NotifyService) trySendCommand(message string, nType NotificationType) error {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return err
	}

	urgency := "normal"
	if nType == Error {
		urgency = "critical"
	}
	return exec.Command(path, "-u", urgency, "-a", n.appName, n.appName, message).Run()
}

func (n *NotifyService) printToTerminal(message string, nType NotificationType) error {
	prefix := "INFO"
	if nType == Error {
		prefix = "ERROR"
	}
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s\n", prefix, message)
	return err
}

func isRunningInTerminal() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
