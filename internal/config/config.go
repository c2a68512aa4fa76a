package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for Trend-Korea.
type Config struct {
	Browser  BrowserConfig  `mapstructure:"browser"  yaml:"browser"`
	Crawler  CrawlerConfig  `mapstructure:"crawler"  yaml:"crawler"`
	Process  ProcessConfig  `mapstructure:"process"  yaml:"process"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Insight  InsightConfig  `mapstructure:"insight"  yaml:"insight"`
	Storage  StorageConfig  `mapstructure:"storage"  yaml:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// BrowserConfig controls the headless Chrome session.
type BrowserConfig struct {
	Headless     bool          `mapstructure:"headless"      yaml:"headless"`
	WindowWidth  int           `mapstructure:"window_width"  yaml:"window_width"`
	WindowHeight int           `mapstructure:"window_height" yaml:"window_height"`
	UserDataDir  string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
	Stealth      bool          `mapstructure:"stealth"       yaml:"stealth"`
	NavTimeout   time.Duration `mapstructure:"nav_timeout"   yaml:"nav_timeout"`
}

// CrawlerConfig controls the weekly crawl loop. The settle delays exist
// because the weekend-news page offers no reliable completion signal: the
// panel mutates asynchronously after every navigation, selection, and
// search, so each action is followed by a fixed grace period on top of a
// bounded wait for the target element.
type CrawlerConfig struct {
	ElementTimeout time.Duration `mapstructure:"element_timeout" yaml:"element_timeout"`
	PageSettle     time.Duration `mapstructure:"page_settle"     yaml:"page_settle"`
	SelectSettle   time.Duration `mapstructure:"select_settle"   yaml:"select_settle"`
	FocusSettle    time.Duration `mapstructure:"focus_settle"    yaml:"focus_settle"`
	TypeSettle     time.Duration `mapstructure:"type_settle"     yaml:"type_settle"`
	SearchSettle   time.Duration `mapstructure:"search_settle"   yaml:"search_settle"`
	MaxItemsPerDay int           `mapstructure:"max_items_per_day" yaml:"max_items_per_day"`
	AnchorWeekday  int           `mapstructure:"anchor_weekday"    yaml:"anchor_weekday"`
}

// ProcessConfig controls title cleaning and keyword extraction.
type ProcessConfig struct {
	StopwordsPath string `mapstructure:"stopwords_path" yaml:"stopwords_path"`
	MinTokenLen   int    `mapstructure:"min_token_len"  yaml:"min_token_len"`
}

// AnalysisConfig controls aggregation tables and surge detection.
type AnalysisConfig struct {
	WordcloudTopN  int `mapstructure:"wordcloud_top_n"  yaml:"wordcloud_top_n"`
	TimeseriesTopN int `mapstructure:"timeseries_top_n" yaml:"timeseries_top_n"`
	EconomyTopN    int `mapstructure:"economy_top_n"    yaml:"economy_top_n"`
	SurgeTopN      int `mapstructure:"surge_top_n"      yaml:"surge_top_n"`
	// ZeroBaseline substitutes for a zero first-month count when computing
	// relative change, so went-from-nothing keywords still rank high
	// instead of dividing by zero. Heuristic, deliberately tunable.
	ZeroBaseline float64 `mapstructure:"zero_baseline" yaml:"zero_baseline"`
}

// InsightConfig controls web search and LLM summarization.
type InsightConfig struct {
	Provider             string        `mapstructure:"provider"                yaml:"provider"`
	Model                string        `mapstructure:"model"                   yaml:"model"`
	Endpoint             string        `mapstructure:"endpoint"                yaml:"endpoint"`
	Temperature          float64       `mapstructure:"temperature"             yaml:"temperature"`
	MaxTokens            int           `mapstructure:"max_tokens"              yaml:"max_tokens"`
	SearchTimeout        time.Duration `mapstructure:"search_timeout"          yaml:"search_timeout"`
	MaxResultsPerKeyword int           `mapstructure:"max_results_per_keyword" yaml:"max_results_per_keyword"`
}

// StorageConfig controls output/storage.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"`
	DataDir         string `mapstructure:"data_dir"         yaml:"data_dir"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:     true,
			WindowWidth:  2560,
			WindowHeight: 1440,
			Stealth:      true,
			NavTimeout:   30 * time.Second,
		},
		Crawler: CrawlerConfig{
			ElementTimeout: 10 * time.Second,
			PageSettle:     2 * time.Second,
			SelectSettle:   500 * time.Millisecond,
			FocusSettle:    200 * time.Millisecond,
			TypeSettle:     200 * time.Millisecond,
			SearchSettle:   10 * time.Second,
			MaxItemsPerDay: 10,
			AnchorWeekday:  int(time.Friday),
		},
		Process: ProcessConfig{
			StopwordsPath: "./stopwords/ko_news_stopwords.txt",
			MinTokenLen:   2,
		},
		Analysis: AnalysisConfig{
			WordcloudTopN:  100,
			TimeseriesTopN: 10,
			EconomyTopN:    10,
			SurgeTopN:      5,
			ZeroBaseline:   0.5,
		},
		Insight: InsightConfig{
			Provider:             "openai",
			Model:                "gpt-4o-mini",
			Temperature:          0.2,
			MaxTokens:            1024,
			SearchTimeout:        20 * time.Second,
			MaxResultsPerKeyword: 4,
		},
		Storage: StorageConfig{
			Type:            "csv",
			DataDir:         "./data",
			MongoDatabase:   "trendkorea",
			MongoCollection: "news",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
