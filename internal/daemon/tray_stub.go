//go:build !windows

package daemon

import (
	"errors"

	"go.uber.org/zap"

	"github.com/username/lunar-calendar/internal/calendar"
)

// TrayApp represents system tray application (stub for non-Windows platforms)
type TrayApp struct {
	logger *zap.Logger
}

// NewTrayApp creates a new system tray application (not supported on this platform)
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return nil, errors.New("system tray is only supported on Windows")
}

// Run does nothing on non-Windows platforms
func (t *TrayApp) Run() error {
	return nil
}

// Stop does nothing on non-Windows platforms
func (t *TrayApp) Stop() {
}

// SetToday does nothing on non-Windows platforms
func (t *TrayApp) SetToday(info *calendar.DayInfo) {
}
