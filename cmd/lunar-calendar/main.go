package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/internal/config"
	"github.com/username/lunar-calendar/internal/i18n"
)

var (
	configPath string
	appConfig  *config.Config
	logger     *zap.Logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lunar-calendar",
		Short:         "Chinese lunar calendar converter",
		Long:          "Convert dates between the Gregorian and the Chinese lunisolar calendar (1891-2100), export festivals and serve an HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Variables from .env feed the LUNAR_* overrides
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			appConfig = cfg

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				logger = initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ., $HOME/.lunar-calendar, /etc/lunar-calendar)")

	rootCmd.AddCommand(lunarCmd())
	rootCmd.AddCommand(solarCmd())
	rootCmd.AddCommand(yearCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

// initializeCalendar builds the calendar stack from config.
// The returned cleanup releases external connections.
func initializeCalendar(ctx context.Context, cfg *config.Config) (calendar.Calendar, func(), error) {
	cleanup := func() {}

	var cal calendar.Calendar = calendar.NewLunarCalendar(logger)

	if cfg.Cache.RedisURL != "" {
		client, err := calendar.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, continuing with in-process cache only",
				zap.Error(err))
		} else {
			logger.Info("Using Redis month cache", zap.Duration("ttl", cfg.Cache.GetTTL()))
			cal = calendar.NewRedisCalendar(cal, client, cfg.Cache.GetTTL(), logger)
			cleanup = func() { client.Close() }
		}
	}

	festivals := calendar.NewFestivalBook(cfg.Calendar.FestivalsFile, logger)
	compositeCal := calendar.NewCompositeCalendar(cal, festivals, logger)

	if err := compositeCal.LoadFestivals(); err != nil {
		cleanup()
		return nil, nil, err
	}

	return compositeCal, cleanup, nil
}

func initTranslator(cfg *config.Config) (*i18n.Translator, error) {
	tr, err := i18n.New(cfg.Calendar.Language, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translations: %w", err)
	}
	return tr, nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	return zapLevel
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return l
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core)
}
