//go:build windows

package daemon

import (
	_ "embed"
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/internal/i18n"
)

//go:embed icon.ico
var trayIcon []byte

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
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
	ready  chan struct{}
	today  *systray.MenuItem
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
		ready:  make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() error {
	var runErr error
	systray.Run(func() { t.onReady(&runErr) }, t.onExit)
	return runErr
}

func (t *TrayApp) onReady(runErr *error) {
	systray.SetIcon(trayIcon)
	systray.SetTitle("农历")
	systray.SetTooltip("Lunar Calendar")

	quitTitle := "Quit"
	if t.daemon.translator != nil {
		quitTitle = t.daemon.translator.T(i18n.MsgTrayQuit)
	}

	t.today = systray.AddMenuItem("…", "Today's lunar date")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem(quitTitle, "Exit the application")
	close(t.ready)

	// Start daemon logic in background
	go func() {
		*runErr = t.daemon.run()
		systray.Quit()
	}()

	// Handle menu item clicks
	go func() {
		for {
			select {
			case <-t.today.ClickedCh:
				t.logger.Info("Today clicked from tray")
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				return
			case <-t.quit:
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
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// SetToday shows the day in the tooltip and the menu
func (t *TrayApp) SetToday(info *calendar.DayInfo) {
	<-t.ready
	tooltip := t.daemon.tooltip(info)
	systray.SetTooltip(tooltip)
	t.today.SetTitle(tooltip)
}

// showStatus shows today's lunar date
func (t *TrayApp) showStatus() {
	status := t.daemon.GetStatus()
	t.logger.Info("Current status", zap.Any("status", status))

	message := "No status available"
	if today, ok := status["today"].(map[string]interface{}); ok {
		message = fmt.Sprintf("%v\n%v %v",
			today["date"],
			today["lunar"],
			strings.Join(today["festivals"].([]string), " "))
	}

	showMessageBox("Lunar Calendar", message)
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
