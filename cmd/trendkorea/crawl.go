package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/browser"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/crawler"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/storage"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

var (
	crawlStart      string
	crawlEnd        string
	crawlCategories string
)

// crawlCmd creates the "crawl" subcommand.
func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Collect weekly issue news blocks for a date range",
		Long: `Log into BIGKinds, then for each category visit every weekly anchor
(one Friday per week) in the range and extract the visible Mon-Fri day
blocks. One failed week is skipped; the rest of the range still runs.`,
		RunE: runCrawl,
	}

	cmd.Flags().StringVar(&crawlStart, "start", "", "range start date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&crawlEnd, "end", "", "range end date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&crawlCategories, "categories", "total,economy", "comma-separated categories to collect")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)
	return crawlRange(cfg, logger, crawlStart, crawlEnd, crawlCategories)
}

// crawlRange owns the browser session for the whole run and guarantees it
// is closed whether or not collection succeeds.
func crawlRange(cfg *config.Config, logger *slog.Logger, startStr, endStr, categoriesStr string) error {
	start, err := parseDate(startStr)
	if err != nil {
		return err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", endStr, startStr)
	}

	cats, err := parseCategories(categoriesStr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(cfg.Browser, logger)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser session", "error", err)
		}
	}()

	if err := session.Login(); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	ctrl := crawler.NewController(cfg.Crawler, logger)
	page := session.CrawlPage()

	runStart := time.Now()
	for _, cat := range cats {
		items, err := ctrl.CollectCategory(ctx, page, cat, start, end)
		if err != nil {
			// Whatever was collected before a fatal or interrupted run is
			// still persisted.
			if len(items) > 0 {
				if saveErr := saveNews(cfg, cat, items, logger); saveErr != nil {
					logger.Error("failed to save partial results", "category", cat, "error", saveErr)
				}
			}
			return fmt.Errorf("collect %s: %w", cat, err)
		}
		if err := saveNews(cfg, cat, items, logger); err != nil {
			return err
		}
	}

	logger.Info("crawl complete", "elapsed", time.Since(runStart).Round(time.Millisecond))
	return nil
}

func saveNews(cfg *config.Config, cat types.Category, items []types.NewsItem, logger *slog.Logger) error {
	store, err := storage.NewNewsStore(cfg.Storage, cat, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	if err := store.Store(items); err != nil {
		_ = store.Close()
		return fmt.Errorf("store %s rows: %w", cat, err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	logger.Info("rows saved", "category", cat, "rows", len(items), "backend", store.Name())
	return nil
}

func parseCategories(raw string) ([]types.Category, error) {
	var cats []types.Category
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cat, err := types.ParseCategory(part)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("no categories given")
	}
	return cats, nil
}
