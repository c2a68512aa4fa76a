package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/analysis"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/insight"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/storage"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

var (
	insightStart  string
	insightEnd    string
	insightPrompt string
	insightTopN   int
)

// insightCmd creates the "insight" subcommand.
func insightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Detect keyword surges and generate a grounded narrative",
		Long: `Read the top keyword monthly timeseries, rank keywords by relative
growth between the range's first and last observed months, search the web
for each surging keyword, and ask the LLM for a sourced explanation.`,
		RunE: runInsight,
	}

	cmd.Flags().StringVar(&insightStart, "start", "", "range start date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&insightEnd, "end", "", "range end date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&insightPrompt, "prompt", "해당 기간에 대해서 설명해줘.", "free-text request included in the LLM prompt")
	cmd.Flags().IntVar(&insightTopN, "top", 0, "number of surge keywords (0 = config default)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runInsight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	start, err := parseDate(insightStart)
	if err != nil {
		return err
	}
	end, err := parseDate(insightEnd)
	if err != nil {
		return err
	}

	topN := cfg.Analysis.SurgeTopN
	if insightTopN > 0 {
		topN = insightTopN
	}

	series, err := storage.ReadTimeseriesCSV(timeseriesPath(cfg))
	if err != nil {
		return err
	}

	surges := analysis.DetectSurges(series, start, end, topN, cfg.Analysis.ZeroBaseline)
	if len(surges) == 0 {
		return fmt.Errorf("no surge keywords in range %s ~ %s", insightStart, insightEnd)
	}
	for _, s := range surges {
		logger.Info("surge keyword",
			"keyword", s.Keyword, "first", s.First, "last", s.Last,
			"change", s.Change, "pct_change", fmt.Sprintf("%.2f", s.PctChange))
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if cfg.Insight.Provider == "openai" && apiKey == "" {
		return types.ErrMissingAPIKey
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	searcher := insight.NewDuckDuckGo(cfg.Insight.SearchTimeout, logger)
	llm := insight.NewLLMClient(cfg.Insight, apiKey, logger)
	composer := insight.NewComposer(searcher, llm, cfg.Insight.MaxResultsPerKeyword, logger)

	result, err := composer.Generate(ctx, surges, start, end, insightPrompt)
	if err != nil {
		return err
	}

	fmt.Println(result.Content)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range result.Sources {
			title := src.Title
			if title == "" {
				title = src.URL
			}
			fmt.Printf("[%d] %s - %s\n", i+1, title, src.URL)
		}
	}
	return nil
}
