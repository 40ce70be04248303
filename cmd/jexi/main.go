package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aayushbajaj/jexi/internal/chef"
	"github.com/aayushbajaj/jexi/internal/config"
	"github.com/aayushbajaj/jexi/internal/dictionary"
	"github.com/aayushbajaj/jexi/internal/oven"
	"github.com/aayushbajaj/jexi/internal/storage"
	"github.com/aayushbajaj/jexi/internal/tui"
	"github.com/aayushbajaj/jexi/pkg/stats"
)

var (
	configPath string

	// Flags for bake command
	bakeFile   string
	bakeCount  int
	bakeOutput string
	bakeQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "jexi",
	Short: "Jexi - bake memorable passwords",
	Long: `A memorable password generator. Mixes words, numbers and symbols from a
dictionary, spices the result and keeps only the strong ones.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Bake passwords without the interactive UI",
	Long: `Bake passwords from a dictionary and write them to the output file.

Examples:
  jexi bake                         # 10 passwords from the embedded pantry
  jexi bake -n 50                   # 50 passwords
  jexi bake -f words.txt -o out.txt # custom dictionary and output file
  jexi bake -q                      # print only the passwords`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runBake(ctx, cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available dictionaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return listDictionaries(cmd.OutOrStdout(), cfg)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show baking history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer store.Close()
		return showStats(cmd.OutOrStdout(), store)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/jexi/config.yaml)")

	bakeCmd.Flags().StringVarP(&bakeFile, "file", "f", "", "Dictionary file (default: embedded pantry)")
	bakeCmd.Flags().IntVarP(&bakeCount, "count", "n", 0, "Number of passwords, 1-1000 (default from config)")
	bakeCmd.Flags().StringVarP(&bakeOutput, "output", "o", "", "Output file (default from config)")
	bakeCmd.Flags().BoolVarP(&bakeQuiet, "quiet", "q", false, "Print only the passwords")

	rootCmd.AddCommand(bakeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newLogger writes structured logs to <dataDir>/logs/jexi.log since the
// terminal belongs to the UI.
func newLogger(dataDir string) (*slog.Logger, io.Closer, error) {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, "jexi.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(logFile, nil)), logFile, nil
}

// openStore returns nil when history is disabled.
func openStore(cfg *config.Config, logger *slog.Logger) *storage.Store {
	if !cfg.History {
		return nil
	}
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		logger.Warn("history disabled", "err", err)
		return nil
	}
	return store
}

// discover lists the dictionaries in the configured directory, with the
// embedded pantry last.
func discover(cfg *config.Config) ([]dictionary.Entry, error) {
	entries, err := dictionary.Discover(cfg.DictionaryDir, cfg.OutputFile)
	if err != nil && !errors.Is(err, dictionary.ErrNoDictionaries) {
		return nil, err
	}
	return append(entries, tui.EmbeddedEntry), nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := newLogger(cfg.DataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if !tui.SetTheme(cfg.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme)
	}

	entries, err := discover(cfg)
	if err != nil {
		return err
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	p := tea.NewProgram(tui.New(tui.Options{
		Entries:     entries,
		Count:       cfg.Count,
		OutputPath:  cfg.OutputFile,
		Threshold:   cfg.Threshold,
		RepairLimit: cfg.RepairLimit,
		Store:       store,
		Logger:      logger,
	}), tea.WithAltScreen())

	_, err = p.Run()
	return err
}

func runBake(ctx context.Context, w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := newLogger(cfg.DataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	return bake(ctx, w, cfg, logger, store, bakeOptions{
		file:   bakeFile,
		count:  bakeCount,
		output: bakeOutput,
		quiet:  bakeQuiet,
	})
}

type bakeOptions struct {
	file   string
	count  int
	output string
	quiet  bool
}

// bake runs one non-interactive session. Passwords gathered before an
// interrupt or a stall are still written to the output file.
func bake(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, store *storage.Store, opts bakeOptions) error {
	name := dictionary.DefaultName
	items := dictionary.Default()
	if opts.file != "" {
		var err error
		if items, err = dictionary.Load(opts.file); err != nil {
			return err
		}
		name = filepath.Base(opts.file)
	}

	count := opts.count
	if count == 0 {
		count = cfg.Count
	}
	output := opts.output
	if output == "" {
		output = cfg.OutputFile
	}

	c, err := chef.New(items, chef.WithLogger(logger), chef.WithRepairLimit(cfg.RepairLimit))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	progress := func(p oven.Progress) {
		if p.Checkpoint && !opts.quiet {
			fmt.Fprintf(w, "[%d/%d] AI Quality: %.1f/1.0 | Length: %d | Entropy: %d bits\n",
				p.Accepted, p.Total, p.Score, len([]rune(p.Password)), stats.EntropyBits(p.Password))
		}
	}

	res, genErr := oven.Generate(ctx, c, c.Scorer(), count,
		oven.WithThreshold(cfg.Threshold),
		oven.WithLogger(logger),
		oven.WithProgress(progress),
	)

	if err := dictionary.Save(output, res.Passwords); err != nil {
		return err
	}

	summary := stats.Summarize(res.Passwords, res.Scores)
	if store != nil {
		err := store.RecordSession(&storage.Session{
			Dictionary: name,
			Requested:  res.Requested,
			Generated:  len(res.Passwords),
			Cancelled:  res.Cancelled,
			AvgScore:   summary.AvgScore,
			Duration:   res.Duration,
		})
		if err != nil {
			logger.Error("recording session failed", "err", err)
		}
	}

	if opts.quiet {
		for _, pw := range res.Passwords {
			fmt.Fprintln(w, pw)
		}
	} else {
		if res.Cancelled {
			fmt.Fprintln(w, "! Generation interrupted !")
		}
		fmt.Fprintf(w, "✓ Baked %d/%d passwords in %.2fs (avg quality %.2f)\n",
			len(res.Passwords), res.Requested, res.Duration.Seconds(), summary.AvgScore)
		fmt.Fprintf(w, "🔐 Passwords saved to %s\n", output)
	}

	logger.Info("bake finished", "dictionary", name, "generated", len(res.Passwords), "cancelled", res.Cancelled, "err", genErr)
	return genErr
}

func listDictionaries(w io.Writer, cfg *config.Config) error {
	entries, err := discover(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "📚 Dictionaries in %s\n", cfg.DictionaryDir)
	for i, e := range entries {
		fmt.Fprintf(w, " [%d] %s\n", i+1, e.Name)
	}
	return nil
}

func showStats(w io.Writer, store *storage.Store) error {
	today, err := store.GetTodayStats()
	if err != nil {
		return fmt.Errorf("failed to get today's stats: %w", err)
	}

	week, err := store.GetWeekStats()
	if err != nil {
		return fmt.Errorf("failed to get week stats: %w", err)
	}

	days := make([]stats.DayData, len(week))
	values := make([]int64, len(week))
	var weekSessions, weekPasswords int64
	for i, d := range week {
		days[i] = stats.DayData{Sessions: d.Sessions, Passwords: d.Passwords}
		values[i] = d.Passwords
		weekSessions += d.Sessions
		weekPasswords += d.Passwords
	}
	peak, peakCount := stats.FindPeak(values)

	fmt.Fprintln(w, "📊 Baking Statistics")
	fmt.Fprintln(w, "────────────────────")
	fmt.Fprintf(w, "Today:     %s passwords (%d sessions)\n", stats.FormatCount(today.Passwords), today.Sessions)
	fmt.Fprintf(w, "This week: %s passwords (%d sessions)\n", stats.FormatCount(weekPasswords), weekSessions)
	fmt.Fprintf(w, "Daily avg: %.1f passwords\n", stats.CalculateDailyAverage(days))
	if peakCount > 0 {
		fmt.Fprintf(w, "Best day:  %s (%s passwords)\n", week[peak].Date, stats.FormatCount(peakCount))
	}

	recent, err := store.GetRecentSessions(5)
	if err != nil {
		return fmt.Errorf("failed to get recent sessions: %w", err)
	}
	if len(recent) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent sessions")
	for _, s := range recent {
		status := ""
		if s.Cancelled {
			status = " (interrupted)"
		}
		fmt.Fprintf(w, "  %s  %-20s %d/%d  quality %.2f%s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"), s.Dictionary, s.Generated, s.Requested, s.AvgScore, status)
	}
	return nil
}
