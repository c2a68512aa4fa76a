package config

import (
	"fmt"
	"time"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Browser.WindowWidth < 1 || cfg.Browser.WindowHeight < 1 {
		return fmt.Errorf("browser.window_width/window_height must be >= 1")
	}
	if cfg.Browser.NavTimeout <= 0 {
		return fmt.Errorf("browser.nav_timeout must be > 0")
	}

	if cfg.Crawler.ElementTimeout <= 0 {
		return fmt.Errorf("crawler.element_timeout must be > 0")
	}
	if cfg.Crawler.SearchSettle < 0 || cfg.Crawler.PageSettle < 0 ||
		cfg.Crawler.SelectSettle < 0 || cfg.Crawler.FocusSettle < 0 ||
		cfg.Crawler.TypeSettle < 0 {
		return fmt.Errorf("crawler settle delays must be >= 0")
	}
	if cfg.Crawler.MaxItemsPerDay < 1 {
		return fmt.Errorf("crawler.max_items_per_day must be >= 1, got %d", cfg.Crawler.MaxItemsPerDay)
	}
	if cfg.Crawler.AnchorWeekday < int(time.Sunday) || cfg.Crawler.AnchorWeekday > int(time.Saturday) {
		return fmt.Errorf("crawler.anchor_weekday must be 0-6, got %d", cfg.Crawler.AnchorWeekday)
	}

	if cfg.Process.MinTokenLen < 1 {
		return fmt.Errorf("process.min_token_len must be >= 1, got %d", cfg.Process.MinTokenLen)
	}

	if cfg.Analysis.WordcloudTopN < 1 || cfg.Analysis.TimeseriesTopN < 1 ||
		cfg.Analysis.EconomyTopN < 1 || cfg.Analysis.SurgeTopN < 1 {
		return fmt.Errorf("analysis top-N values must be >= 1")
	}
	if cfg.Analysis.ZeroBaseline <= 0 {
		return fmt.Errorf("analysis.zero_baseline must be > 0, got %g", cfg.Analysis.ZeroBaseline)
	}

	validProviders := map[string]bool{
		"openai": true, "ollama": true, "custom": true,
	}
	if !validProviders[cfg.Insight.Provider] {
		return fmt.Errorf("insight.provider must be openai/ollama/custom, got %q", cfg.Insight.Provider)
	}
	if cfg.Insight.MaxResultsPerKeyword < 1 {
		return fmt.Errorf("insight.max_results_per_keyword must be >= 1, got %d", cfg.Insight.MaxResultsPerKeyword)
	}

	validStorageTypes := map[string]bool{
		"csv": true, "mongodb": true,
	}
	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("storage.type %q is not supported (valid: csv, mongodb)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required when storage.type is mongodb")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
