package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("TRENDKOREA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("trendkorea")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".trendkorea"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.window_width", cfg.Browser.WindowWidth)
	v.SetDefault("browser.window_height", cfg.Browser.WindowHeight)
	v.SetDefault("browser.stealth", cfg.Browser.Stealth)
	v.SetDefault("browser.nav_timeout", cfg.Browser.NavTimeout)

	v.SetDefault("crawler.element_timeout", cfg.Crawler.ElementTimeout)
	v.SetDefault("crawler.page_settle", cfg.Crawler.PageSettle)
	v.SetDefault("crawler.select_settle", cfg.Crawler.SelectSettle)
	v.SetDefault("crawler.focus_settle", cfg.Crawler.FocusSettle)
	v.SetDefault("crawler.type_settle", cfg.Crawler.TypeSettle)
	v.SetDefault("crawler.search_settle", cfg.Crawler.SearchSettle)
	v.SetDefault("crawler.max_items_per_day", cfg.Crawler.MaxItemsPerDay)
	v.SetDefault("crawler.anchor_weekday", cfg.Crawler.AnchorWeekday)

	v.SetDefault("process.stopwords_path", cfg.Process.StopwordsPath)
	v.SetDefault("process.min_token_len", cfg.Process.MinTokenLen)

	v.SetDefault("analysis.wordcloud_top_n", cfg.Analysis.WordcloudTopN)
	v.SetDefault("analysis.timeseries_top_n", cfg.Analysis.TimeseriesTopN)
	v.SetDefault("analysis.economy_top_n", cfg.Analysis.EconomyTopN)
	v.SetDefault("analysis.surge_top_n", cfg.Analysis.SurgeTopN)
	v.SetDefault("analysis.zero_baseline", cfg.Analysis.ZeroBaseline)

	v.SetDefault("insight.provider", cfg.Insight.Provider)
	v.SetDefault("insight.model", cfg.Insight.Model)
	v.SetDefault("insight.temperature", cfg.Insight.Temperature)
	v.SetDefault("insight.max_tokens", cfg.Insight.MaxTokens)
	v.SetDefault("insight.search_timeout", cfg.Insight.SearchTimeout)
	v.SetDefault("insight.max_results_per_keyword", cfg.Insight.MaxResultsPerKeyword)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
