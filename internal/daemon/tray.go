//go:build windows
// +build windows

package daemon

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	stopOnce sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(getCalendarIcon())
	systray.SetTitle("TR")
	systray.SetTooltip("Turkish holiday checker")

	mCheckNow := systray.AddMenuItem("Check Now", "Check today immediately")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show today's status")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start daemon logic in background
	go t.daemon.runScheduledLogic()

	go func() {
		for {
			select {
			case <-mCheckNow.ClickedCh:
				t.logger.Info("Check Now clicked from tray")
				go t.daemon.CheckNow()
			case <-mStatus.ClickedCh:
				t.logger.Info("Status clicked from tray")
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.stopOnce.Do(func() {
		close(t.quit)
	})
}

// SetStatus shows a short status line in the tray tooltip
func (t *TrayApp) SetStatus(text string) {
	systray.SetTooltip("Turkish holiday checker: " + text)
}

// ShowNotification logs the notification; fyne.io/systray has no balloon support
func (t *TrayApp) ShowNotification(title, message string) {
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

func (t *TrayApp) showStatus() {
	status := t.daemon.Status()
	t.logger.Info("Current status", zap.Any("status", status))

	message := "Not checked yet"
	if last, ok := status["last_check"].(map[string]interface{}); ok {
		message = fmt.Sprintf(
			"Date: %v\nDay off: %v\nType: %v\nWorking hours: %v\nNote: %v",
			last["date"],
			last["day_off"],
			last["calendar_type"],
			last["working_hours"],
			last["note"],
		)
	}
	message += fmt.Sprintf("\nNext check: %v", status["next_run"])

	showMessageBox("Holiday Checker", message)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
