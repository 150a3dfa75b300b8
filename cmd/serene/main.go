package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"serene/internal/bootstrap"
	sessiondto "serene/internal/modules/session/dto"
	"serene/internal/platform/config"
	"serene/internal/platform/logging"
	progressview "serene/internal/ui/views/progress"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataPath string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "serene",
		Short:         "Ambient meditation sessions, progress and journal in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataPath, "data", defaultDataPath(), "data directory (config, database, journal, sounds, plugins)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newThemesCmd(flags))
	root.AddCommand(newMeditateCmd(flags))
	root.AddCommand(newProgressCmd(flags))
	root.AddCommand(newJournalCmd(flags))
	root.AddCommand(newDeviceCmd(flags))
	return root
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".serene"
	}
	return filepath.Join(home, ".serene")
}

// session bundles a wired app with the resources to release after a command.
type session struct {
	app    *bootstrap.App
	cfg    config.Config
	logger hclog.Logger
	closer io.Closer
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.logger.Warn("shutdown", "error", err)
	}
	_ = s.closer.Close()
}

// loadApp reads config and wires the app. The TUI always logs to the log
// file so log lines never land on the screen.
func loadApp(flags *globalFlags, allowStderr bool) (*session, error) {
	cfg, err := config.Load(flags.dataPath)
	if err != nil {
		return nil, err
	}
	opts := logging.Options{Name: "serene", Level: cfg.LogLevel, Path: cfg.LogPath}
	if flags.verbose && allowStderr {
		opts.Level, opts.Output = "debug", os.Stderr
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &session{app: app, cfg: cfg, logger: logger, closer: closer}, nil
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the serene terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer s.Close()
			return bootstrap.RunTUI(s.app)
		},
	}
}

func newThemesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List ambient themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			themes, err := s.app.ThemeCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, t := range themes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-9s %s\n", t.Icon, t.ID, t.Description)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", strings.Join(t.Benefits, " · "))
			}
			return nil
		},
	}
}

func newMeditateCmd(flags *globalFlags) *cobra.Command {
	var themeID string
	var duration time.Duration
	var intensity float64

	meditate := &cobra.Command{
		Use:   "meditate",
		Short: "Run one timed session; completed sessions count toward progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			if !cmd.Flags().Changed("intensity") {
				intensity = s.cfg.DefaultIntensity
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			unsubscribe := s.app.SessionCLI.Subscribe(func(state sessiondto.StateOutput) {
				if state.SessionActive {
					_, _ = fmt.Fprintf(out, "\r%s %s  %s ", state.Theme.Icon, state.Theme.Name, formatClock(state.Remaining))
				}
			})
			defer unsubscribe()

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			result, err := s.app.SessionCLI.Meditate(ctx, themeID, duration, intensity, ticker.C)
			_, _ = fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(out, "session ended early; not recorded")
				return nil
			}
			if err != nil {
				return err
			}
			if result.Recorded == nil {
				_, _ = fmt.Fprintln(out, "session complete (progress could not be saved)")
				return nil
			}
			snap := result.Recorded.Snapshot
			_, _ = fmt.Fprintf(out, "session complete: %d min total, streak %d day(s)\n", snap.TotalMinutes, snap.StreakDays)
			for _, a := range result.Recorded.NewlyUnlocked {
				_, _ = fmt.Fprintf(out, "unlocked %s %s: %s\n", a.Icon, a.Title, a.Description)
			}
			return nil
		},
	}
	meditate.Flags().StringVar(&themeID, "theme", "", "theme id (see `serene themes`)")
	meditate.Flags().DurationVar(&duration, "duration", 0, "session length: 5m|10m|15m|20m|30m (default from config)")
	meditate.Flags().Float64Var(&intensity, "intensity", 0.5, "ambient intensity between 0 and 1")
	return meditate
}

func newProgressCmd(flags *globalFlags) *cobra.Command {
	var month string
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Show totals, streak, achievements and the month heatmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := context.Background()
			snap, err := s.app.ProgressCLI.Snapshot(ctx)
			if err != nil {
				return err
			}
			cal, err := s.app.ProgressCLI.Calendar(ctx, month)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "total=%dm sessions=%d streak=%d week_start=%s\n", snap.TotalMinutes, snap.SessionCount, snap.StreakDays, snap.WeekStart)
			_, _ = fmt.Fprintf(out, "week (Sun..Sat) minutes=%v\n", snap.WeeklyMinutes)
			for _, a := range snap.Achievements {
				mark := "locked"
				if a.Unlocked {
					mark = "unlocked " + a.UnlockedAt.Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(out, "%s %-16s %s\n", a.Icon, a.Title, mark)
			}
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, progressview.RenderHeatmap(cal, time.Now().Format("2006-01-02")))
			return nil
		},
	}
	progress.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default current)")
	return progress
}

func newJournalCmd(flags *globalFlags) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Write and read reflections"}

	var mood, themeID, notes string
	var durationSec int
	addCmd := &cobra.Command{
		Use:   "add [notes...]",
		Short: "Save a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(notes) == "" {
				notes = strings.Join(args, " ")
			}
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			if themeID == "" {
				themeID = s.cfg.DefaultTheme
			}
			entry, err := s.app.JournalCLI.Add(context.Background(), mood, themeID, durationSec, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s %s (%s)\n", entry.MoodSymbol, entry.Mood, entry.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&mood, "mood", "calm", "calm|happy|grateful|neutral|tired|anxious|sad")
	addCmd.Flags().StringVar(&themeID, "theme", "", "theme of the session (default from config)")
	addCmd.Flags().IntVar(&durationSec, "duration-sec", 0, "session length in seconds")
	addCmd.Flags().StringVar(&notes, "notes", "", "entry text (or pass it as arguments)")
	journal.AddCommand(addCmd)

	journal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.app.JournalCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-8s theme=%s duration=%ds\n  %s\n",
					e.Date.Format("2006-01-02 15:04"), e.MoodSymbol, e.Mood, e.ThemeID, e.DurationSeconds,
					strings.ReplaceAll(e.Notes, "\n", "\n  "))
			}
			return nil
		},
	})
	return journal
}

func newDeviceCmd(flags *globalFlags) *cobra.Command {
	device := &cobra.Command{Use: "device", Short: "Haptics driver operations"}
	device.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List haptics driver manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			drivers, err := s.app.DeviceCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(drivers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no drivers configured")
				return nil
			}
			for _, d := range drivers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n", d.Name, d.Version, d.Enabled, d.Binary, strings.Join(d.Capabilities, ","))
			}
			return nil
		},
	})

	device.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate driver checksums, lifecycle and hardware",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			results, err := s.app.DeviceCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no drivers configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t hardware=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK, r.HardwareOK)
				if r.Device != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " device=%s", r.Device)
				}
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var driver string
	var intensity, sharpness float64
	pulseCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Send one transient pulse through a driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer s.Close()
			if driver == "" {
				driver = s.cfg.HapticsPlugin
			}
			if driver == "" {
				return fmt.Errorf("--driver is required when haptics_plugin is not configured")
			}
			out, err := s.app.DeviceCLI.Pulse(context.Background(), driver, intensity, sharpness)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "driver=%s accepted=%t", out.Driver, out.Accepted)
			if out.Message != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " message=%q", out.Message)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	pulseCmd.Flags().StringVar(&driver, "driver", "", "driver name (default haptics_plugin from config)")
	pulseCmd.Flags().Float64Var(&intensity, "intensity", 0.6, "pulse intensity between 0 and 1")
	pulseCmd.Flags().Float64Var(&sharpness, "sharpness", 0.4, "pulse sharpness between 0 and 1")
	device.AddCommand(pulseCmd)
	return device
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
