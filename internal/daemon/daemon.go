package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/internal/i18n"
	"github.com/username/lunar-calendar/pkg/dateutil"
)

// HTTPServer is the server the daemon keeps running
type HTTPServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Options configures a Daemon
type Options struct {
	RolloverCheck   time.Duration // how often to look for a new local day
	ShutdownTimeout time.Duration
	SystemTray      bool // Show system tray icon (Windows only)
}

// Daemon represents the daemon process
type Daemon struct {
	server     HTTPServer
	calendar   calendar.Calendar
	translator *i18n.Translator
	opts       Options
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp
	now        func() time.Time
	mu         sync.Mutex // protects today
	today      *calendar.DayInfo
}

// NewDaemon creates a new daemon instance
func NewDaemon(server HTTPServer, cal calendar.Calendar, translator *i18n.Translator, opts Options, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.RolloverCheck <= 0 {
		opts.RolloverCheck = time.Minute
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	return &Daemon{
		server:     server,
		calendar:   cal,
		translator: translator,
		opts:       opts,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		now:        time.Now,
	}
}

// Start starts the daemon and blocks until it stops
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.opts.SystemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.run()
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		return d.trayApp.Run()
	}

	d.logger.Info("Running without system tray")
	return d.run()
}

// run serves HTTP and watches for day rollover until stopped
func (d *Daemon) run() error {
	d.refreshToday(d.now())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- d.server.Start()
	}()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.opts.RolloverCheck)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			return d.shutdown()

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
			return d.shutdown()

		case err := <-serverErr:
			d.Stop()
			if err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil

		case <-ticker.C:
			d.checkRollover(d.now())
		}
	}
}

func (d *Daemon) shutdown() error {
	if d.trayApp != nil {
		d.trayApp.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.opts.ShutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// checkRollover refreshes today's info once the local date changes.
// It reports whether a refresh happened.
func (d *Daemon) checkRollover(now time.Time) bool {
	d.mu.Lock()
	current := d.today
	d.mu.Unlock()

	if current != nil && dateutil.IsSameDay(current.Date, localDate(now)) {
		return false
	}

	d.refreshToday(now)
	return true
}

// refreshToday looks up the lunar info of the local date of now
func (d *Daemon) refreshToday(now time.Time) {
	date := localDate(now)

	info, err := d.calendar.GetDayInfo(date)
	if err != nil {
		d.logger.Error("Failed to look up today",
			zap.String("date", dateutil.FormatDate(date)),
			zap.Error(err))
		return
	}

	d.mu.Lock()
	d.today = info
	d.mu.Unlock()

	d.logger.Info("Today",
		zap.String("date", dateutil.FormatDate(date)),
		zap.Stringer("lunar", info.Lunar),
		zap.Strings("festivals", info.Festivals))

	if d.trayApp != nil {
		d.trayApp.SetToday(info)
	}
}

// localDate maps a moment to midnight UTC of its local calendar date
func localDate(now time.Time) time.Time {
	return dateutil.Date(now.Year(), int(now.Month()), now.Day())
}

// Today returns the last looked up day, or nil before the first lookup
func (d *Daemon) Today() *calendar.DayInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.today == nil {
		return nil
	}
	today := *d.today
	return &today
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"running":        d.ctx.Err() == nil,
		"rollover_check": d.opts.RolloverCheck.String(),
	}

	if today := d.Today(); today != nil {
		status["today"] = map[string]interface{}{
			"date":      dateutil.FormatDate(today.Date),
			"lunar":     today.Lunar.String(),
			"zodiac":    today.Zodiac,
			"festivals": today.Festivals,
		}
	}

	return status
}

// tooltip renders the tray tooltip of a day
func (d *Daemon) tooltip(info *calendar.DayInfo) string {
	label := info.Lunar.String()
	for _, f := range info.Festivals {
		label += " " + f
	}
	if d.translator == nil {
		return label
	}
	return d.translator.Tf(i18n.MsgTrayTooltip, map[string]any{"Label": label})
}
