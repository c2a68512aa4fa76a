package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
)

var (
	cfgFile string
	verbose bool
	dataDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trendkorea",
		Short: "trendkorea — weekly issue news crawler and keyword trend analyzer",
		Long: `trendkorea collects the BIGKinds weekly issue news blocks, extracts
keyword signals from headlines, aggregates them monthly, and explains
detected keyword surges with a web-search-grounded LLM summary.

Pipeline steps:
  • crawl      — collect weekly news blocks per category (total, economy)
  • process    — clean titles, extract keywords, build the clean dataset
  • aggregate  — sum keyword weights per (keyword, category, year, month)
  • analyze    — derive wordcloud / timeseries / economy top-N tables
  • insight    — detect surges and generate a grounded narrative
  • all        — crawl through analyze in sequence`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory for all CSV inputs and outputs")

	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(aggregateCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(insightCmd())
	rootCmd.AddCommand(allCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file, and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	// Credentials (.env) are optional here; commands that need them fail
	// with a precise error instead.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogger creates a structured logger honoring config and -v.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", raw, err)
	}
	return d, nil
}

// Dataset file locations under the data directory.
func rawNewsPath(cfg *config.Config, category string) string {
	return filepath.Join(cfg.Storage.DataDir, category+"_news.csv")
}

func cleanDatasetPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataDir, "clean_dataset.csv")
}

func monthlyCountsPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataDir, "monthly_keyword_counts.csv")
}

func wordcloudPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataDir, "wordcloud_top_keywords.csv")
}

func timeseriesPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataDir, "top10_monthly_timeseries.csv")
}

func economyTopPath(cfg *config.Config) string {
	return filepath.Join(cfg.Storage.DataDir, "economy_top10_keywords.csv")
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("trendkorea %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Browser:\n")
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:           %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Window:            %dx%d\n", cfg.Browser.WindowWidth, cfg.Browser.WindowHeight)
			fmt.Printf("\nCrawler:\n")
			fmt.Printf("  Element Timeout:   %s\n", cfg.Crawler.ElementTimeout)
			fmt.Printf("  Search Settle:     %s\n", cfg.Crawler.SearchSettle)
			fmt.Printf("  Max Items/Day:     %d\n", cfg.Crawler.MaxItemsPerDay)
			fmt.Printf("  Anchor Weekday:    %s\n", time.Weekday(cfg.Crawler.AnchorWeekday))
			fmt.Printf("\nAnalysis:\n")
			fmt.Printf("  Surge Top-N:       %d\n", cfg.Analysis.SurgeTopN)
			fmt.Printf("  Zero Baseline:     %g\n", cfg.Analysis.ZeroBaseline)
			fmt.Printf("\nInsight:\n")
			fmt.Printf("  Provider:          %s\n", cfg.Insight.Provider)
			fmt.Printf("  Model:             %s\n", cfg.Insight.Model)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			fmt.Printf("  Data Dir:          %s\n", cfg.Storage.DataDir)
			return nil
		},
	}
}
