package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/internal/daemon"
	"github.com/username/lunar-calendar/internal/i18n"
	"github.com/username/lunar-calendar/internal/server"
	"github.com/username/lunar-calendar/pkg/dateutil"
	"github.com/username/lunar-calendar/pkg/lunar"
)

const labelColumns = 14

// printRow writes "label  value" with the label padded to a fixed display width
func printRow(w io.Writer, label string, value string) {
	fmt.Fprintf(w, "  %s%s\n", i18n.PadRight(label, labelColumns), value)
}

func festivalsText(festivals []string) string {
	if len(festivals) == 0 {
		return "-"
	}
	return strings.Join(festivals, " ")
}

// dateArg parses an optional YYYY-MM-DD argument, defaulting to today
func dateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		now := time.Now()
		return dateutil.Date(now.Year(), int(now.Month()), now.Day()), nil
	}
	return dateutil.ParseDate(args[0])
}

func lunarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lunar [YYYY-MM-DD]",
		Short: "Show the lunar date of a Gregorian date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateArg(args)
			if err != nil {
				return err
			}

			cal, cleanup, err := initializeCalendar(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			info, err := cal.GetDayInfo(date)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", dateutil.FormatDate(date), err)
			}

			logger.Debug("Converted date",
				zap.String("date", dateutil.FormatDate(date)),
				zap.Stringer("lunar", info.Lunar))

			out := cmd.OutOrStdout()
			printRow(out, tr.T(i18n.MsgGregorian), fmt.Sprintf("%s %s", dateutil.FormatDate(info.Date), tr.Weekday(info.Date.Weekday())))
			printRow(out, tr.T(i18n.MsgLunar), info.Lunar.String())
			printRow(out, tr.T(i18n.MsgZodiac), info.Zodiac)
			printRow(out, tr.T(i18n.MsgFestivals), festivalsText(info.Festivals))
			return nil
		},
	}
}

func solarCmd() *cobra.Command {
	var leap bool

	cmd := &cobra.Command{
		Use:   "solar <year> <month> <day>",
		Short: "Show the Gregorian date of a lunar date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := lunar.ParseYear(args[0])
			if err != nil {
				return err
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: month %q", lunar.ErrInvalidInput, args[1])
			}
			day, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%w: day %q", lunar.ErrInvalidInput, args[2])
			}

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			l := lunar.Date{Year: year, Month: month, Day: day, IsLeapMonth: leap}
			date, err := l.Gregorian()
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", l, err)
			}

			out := cmd.OutOrStdout()
			printRow(out, tr.T(i18n.MsgLunar), l.String())
			printRow(out, tr.T(i18n.MsgGregorian), fmt.Sprintf("%s %s", dateutil.FormatDate(date), tr.Weekday(date.Weekday())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&leap, "leap", false, "The month is the leap month of the year")

	return cmd
}

func yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year <year>",
		Short: "Describe a lunar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := lunar.ParseYear(args[0])
			if err != nil {
				return err
			}

			info, err := lunar.YearInfo(year)
			if err != nil {
				return err
			}

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			leapText := tr.T(i18n.MsgNoLeapMonth)
			if info.LeapMonth != 0 {
				if leapText, err = lunar.MonthName(info.LeapMonth, true); err != nil {
					return err
				}
			}
			gregorianLeap := tr.T(i18n.MsgNo)
			if info.GregorianLeap {
				gregorianLeap = tr.T(i18n.MsgYes)
			}

			lengths := make([]string, 0, len(info.MonthLengths))
			for i, first := range info.Months() {
				name, err := lunar.MonthName(first.Month, first.IsLeapMonth)
				if err != nil {
					return err
				}
				lengths = append(lengths, fmt.Sprintf("%s %d", name, info.MonthLengths[i]))
			}

			out := cmd.OutOrStdout()
			printRow(out, tr.T(i18n.MsgYearName), fmt.Sprintf("%d %s", info.Year, info.Name))
			printRow(out, tr.T(i18n.MsgZodiac), info.Zodiac)
			printRow(out, tr.T(i18n.MsgNewYear), dateutil.FormatDate(info.NewYear))
			printRow(out, tr.T(i18n.MsgLeapMonth), leapText)
			printRow(out, tr.T(i18n.MsgTotalDays), tr.Plural(i18n.MsgDaysCount, info.TotalDays))
			printRow(out, tr.T(i18n.MsgGregorianLeap), gregorianLeap)
			printRow(out, tr.T(i18n.MsgMonthLengths), strings.Join(lengths, ", "))
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print every day of a Gregorian month with its lunar date (default: this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			year, month := now.Year(), int(now.Month())
			if len(args) == 1 {
				date, err := dateutil.ParseDate(args[0] + "-01")
				if err != nil {
					return err
				}
				year, month = date.Year(), int(date.Month())
			}

			cal, cleanup, err := initializeCalendar(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			info, err := cal.GetMonthInfo(year, time.Month(month))
			if err != nil {
				return fmt.Errorf("failed to get month %04d-%02d: %w", year, month, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s  %s\n",
				i18n.PadRight(tr.T(i18n.MsgGregorian), 10),
				i18n.PadRight(tr.T(i18n.MsgWeekday), 6),
				i18n.PadRight(tr.T(i18n.MsgLunar), 12),
				tr.T(i18n.MsgFestivals))
			fmt.Fprintln(out, strings.Repeat("─", 48))

			for _, day := range info.Days {
				fmt.Fprintf(out, "%s  %s  %s  %s\n",
					dateutil.FormatDate(day.Date),
					i18n.PadRight(tr.Weekday(day.Date.Weekday()), 6),
					i18n.PadRight(day.Label(), 12),
					strings.Join(day.Festivals, " "))
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		fromStr string
		toStr   string
		allDays bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export festivals and lunar dates as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := dateutil.ParseDate(fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to, err := dateutil.ParseDate(toStr)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			cal, cleanup, err := initializeCalendar(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			opts := calendar.ExportOptions{
				ProdID:  appConfig.Export.ProdID,
				Name:    appConfig.Export.Name,
				AllDays: allDays,
			}
			count, err := calendar.ExportICS(cal, from, to, opts, w)
			if err != nil {
				return err
			}

			logger.Info("Calendar exported",
				zap.String("from", dateutil.FormatDate(from)),
				zap.String("to", dateutil.FormatDate(to)),
				zap.Int("events", count))

			if output != "" && output != "-" {
				fmt.Fprintln(cmd.ErrOrStderr(), tr.Tf(i18n.MsgExportDone, map[string]any{"Count": count, "File": output}))
			}
			return nil
		},
	}

	year := time.Now().Year()
	cmd.Flags().StringVar(&fromStr, "from", fmt.Sprintf("%04d-01-01", year), "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", fmt.Sprintf("%04d-12-31", year), "Last day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&allDays, "all-days", false, "Emit an event for every day, not only festivals")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API in daemon mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				appConfig.Server.Address = address
			}

			cal, cleanup, err := initializeCalendar(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			tr, err := initTranslator(appConfig)
			if err != nil {
				return err
			}

			srv := server.New(appConfig, cal, logger)
			d := daemon.NewDaemon(srv, cal, tr, daemon.Options{
				RolloverCheck:   appConfig.Daemon.GetRolloverCheck(),
				ShutdownTimeout: appConfig.Server.GetShutdownTimeout(),
				SystemTray:      appConfig.Daemon.SystemTray,
			}, logger)

			logger.Info("Starting daemon",
				zap.String("address", appConfig.Server.Address),
				zap.Bool("metrics", appConfig.Server.Metrics),
				zap.Bool("system_tray", appConfig.Daemon.SystemTray))

			return d.Start()
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides server.address)")

	return cmd
}
