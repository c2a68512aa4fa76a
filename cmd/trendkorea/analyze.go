package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/analysis"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/keywords"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/storage"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// processCmd creates the "process" subcommand.
func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Build the clean dataset from raw news CSVs",
		Long: `Merge the per-category raw news files, drop incomplete and duplicate
rows, clean titles, extract keywords, and write the clean dataset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)
			return runProcess(cfg, logger)
		},
	}
}

func runProcess(cfg *config.Config, logger *slog.Logger) error {
	var rows []types.NewsItem
	for _, cat := range types.Categories() {
		path := rawNewsPath(cfg, string(cat))
		items, err := storage.ReadNewsCSV(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("raw news file missing, skipping category", "path", path)
				continue
			}
			return err
		}
		logger.Info("raw news loaded", "category", cat, "rows", len(items))
		rows = append(rows, items...)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no raw news rows found under %s — run crawl first", cfg.Storage.DataDir)
	}

	stopwords, err := keywords.LoadStopwords(cfg.Process.StopwordsPath)
	if err != nil {
		return fmt.Errorf("load stopwords: %w", err)
	}
	logger.Info("stopwords loaded", "count", len(stopwords), "path", cfg.Process.StopwordsPath)

	ex := keywords.NewExtractor(stopwords, cfg.Process.MinTokenLen)
	dataset := analysis.BuildDataset(rows, ex, logger)

	out := cleanDatasetPath(cfg)
	if err := storage.WriteProcessedCSV(out, dataset); err != nil {
		return err
	}
	logger.Info("clean dataset written", "path", out, "rows", len(dataset))
	return nil
}

// aggregateCmd creates the "aggregate" subcommand.
func aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate keyword weights per (keyword, category, year, month)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)
			return runAggregate(cfg, logger)
		},
	}
}

func runAggregate(cfg *config.Config, logger *slog.Logger) error {
	items, err := storage.ReadProcessedCSV(cleanDatasetPath(cfg))
	if err != nil {
		return err
	}

	counts := analysis.AggregateMonthly(items)

	out := monthlyCountsPath(cfg)
	if err := storage.WriteMonthlyCSV(out, counts); err != nil {
		return err
	}
	logger.Info("monthly keyword counts written", "path", out, "rows", len(counts))
	return nil
}

// analyzeCmd creates the "analyze" subcommand.
func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Derive the wordcloud, timeseries, and economy top-N tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)
			return runAnalyze(cfg, logger)
		},
	}
}

func runAnalyze(cfg *config.Config, logger *slog.Logger) error {
	counts, err := storage.ReadMonthlyCSV(monthlyCountsPath(cfg))
	if err != nil {
		return err
	}

	wordcloud := analysis.WordcloudTable(counts, cfg.Analysis.WordcloudTopN)
	if err := storage.WriteKeywordCountsCSV(wordcloudPath(cfg), wordcloud); err != nil {
		return err
	}
	logger.Info("wordcloud table written", "path", wordcloudPath(cfg), "rows", len(wordcloud))

	timeseries := analysis.TopTimeseries(counts, cfg.Analysis.TimeseriesTopN)
	if err := storage.WriteTimeseriesCSV(timeseriesPath(cfg), timeseries); err != nil {
		return err
	}
	logger.Info("timeseries table written", "path", timeseriesPath(cfg), "rows", len(timeseries))

	economy := analysis.EconomyTop(counts, cfg.Analysis.EconomyTopN)
	if err := storage.WriteKeywordCountsCSV(economyTopPath(cfg), economy); err != nil {
		return err
	}
	logger.Info("economy table written", "path", economyTopPath(cfg), "rows", len(economy))

	return nil
}

// allCmd runs crawl through analyze in sequence.
func allCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run crawl, process, aggregate, and analyze in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)

			if err := crawlRange(cfg, logger, crawlStart, crawlEnd, crawlCategories); err != nil {
				return err
			}
			if err := runProcess(cfg, logger); err != nil {
				return err
			}
			if err := runAggregate(cfg, logger); err != nil {
				return err
			}
			return runAnalyze(cfg, logger)
		},
	}

	cmd.Flags().StringVar(&crawlStart, "start", "", "range start date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&crawlEnd, "end", "", "range end date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&crawlCategories, "categories", "total,economy", "comma-separated categories to collect")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
