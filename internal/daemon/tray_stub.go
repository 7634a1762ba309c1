//go:build !windows
// +build !windows

package daemon

import (
	"errors"

	"go.uber.org/zap"
)

var errTrayUnsupported = errors.New("system tray is only supported on Windows")

// TrayApp is a placeholder on platforms without tray support
type TrayApp struct{}

// NewTrayApp always fails outside Windows; the daemon then runs in console mode
func NewTrayApp(*Daemon, *zap.Logger) (*TrayApp, error) {
	return nil, errTrayUnsupported
}

func (t *TrayApp) Run() {}
func (t *TrayApp) Stop() {}
func (t *TrayApp) SetStatus(string) {}
func (t *TrayApp) ShowNotification(title, message string) {}
