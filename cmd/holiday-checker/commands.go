package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/holiday-checker/internal/calendar"
	"github.com/username/holiday-checker/internal/daemon"
	"github.com/username/holiday-checker/pkg/dateutil"
	"go.uber.org/zap"
)

func holidaysCmd() *cobra.Command {
	var year int
	var withNames bool

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays of a year (default: current year)",
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := calendar.NewChecker(calendar.WithLogger(logger))

			var yearArg *int
			if cmd.Flags().Changed("year") {
				yearArg = &year
			}

			out := cmd.OutOrStdout()
			if !withNames {
				printDates(out, checker.PublicHolidays(yearArg))
				return nil
			}

			y := checker.Today().Year()
			if yearArg != nil {
				y = *yearArg
			}
			for _, h := range calendar.Holidays(y) {
				fmt.Fprintf(out, "%s  %-9s  %s\n", dateutil.FormatDate(h.Date), h.Kind, h.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Gregorian year")
	cmd.Flags().BoolVar(&withNames, "names", false, "Print holiday kind and name next to each date")

	return cmd
}

func religiousCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "religious",
		Short: "List the approximated Ramazan and Kurban Bayramı dates of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = calendar.NewChecker().Today().Year()
			}

			printDates(cmd.OutOrStdout(), calendar.ReligiousHolidays(year))
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Gregorian year (default: current year)")

	return cmd
}

func dayOffCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "dayoff",
		Short: "Print whether today (or --date) is a weekend or public holiday",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []calendar.Option{calendar.WithLogger(logger)}

			if dateStr != "" {
				date, err := dateutil.ParseDate(dateStr)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
				opts = append(opts, calendar.WithClock(func() time.Time { return date }))
			}

			checker := calendar.NewChecker(opts...)
			dayOff := checker.IsDayOff()

			logger.Debug("Day off check",
				zap.String("date", dateutil.FormatDate(checker.Today())),
				zap.Bool("day_off", dayOff))

			fmt.Fprintln(cmd.OutOrStdout(), dayOff)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Check this date instead of today (YYYY-MM-DD)")

	return cmd
}

func monthCmd() *cobra.Command {
	var year int
	var month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the per-day calendar of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := dateutil.Today()
			if !cmd.Flags().Changed("year") {
				year = today.Year()
			}
			if !cmd.Flags().Changed("month") {
				month = int(today.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			cal := initializeCalendar(appConfig)
			monthInfo, err := cal.GetMonthInfo(year, time.Month(month))
			if err != nil {
				return fmt.Errorf("failed to get month info: %w", err)
			}

			printMonth(cmd.OutOrStdout(), monthInfo)
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Gregorian year (default: current year)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current month)")

	return cmd
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Check once a day whether it is a day off and log the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute := appConfig.Daemon.GetDailyTime()

			d := daemon.NewDaemon(
				calendar.NewChecker(calendar.WithLogger(logger)),
				initializeCalendar(appConfig),
				hour,
				minute,
				appConfig.Daemon.SystemTray,
				logger,
			)

			logger.Info("Starting daemon",
				zap.Int("daily_hour", hour),
				zap.Int("daily_minute", minute),
				zap.Bool("system_tray", appConfig.Daemon.SystemTray))

			return d.Start()
		},
	}
}

func printDates(w io.Writer, dates []time.Time) {
	for _, d := range dates {
		fmt.Fprintln(w, dateutil.FormatDate(d))
	}
}

func printMonth(w io.Writer, monthInfo *calendar.MonthInfo) {
	fmt.Fprintf(w, "%d-%02d\n", monthInfo.Year, monthInfo.Month)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Date            | Type      | Hours | Note")
	fmt.Fprintln(w, "------------------+-----------+-------+----------------")
	for _, day := range monthInfo.Days {
		fmt.Fprintf(w, "  %s | %-9s | %5d | %s\n",
			day.Date.Format("2006-01-02 Mon"),
			day.Type,
			day.WorkingHours,
			day.Note)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Working days:   %d\n", monthInfo.WorkDays)
	fmt.Fprintf(w, "  Working hours:  %d\n", monthInfo.WorkingHours)
	fmt.Fprintf(w, "  Weekend days:   %d\n", monthInfo.Weekends)
	fmt.Fprintf(w, "  Holidays:       %d\n", monthInfo.Holidays)
}
