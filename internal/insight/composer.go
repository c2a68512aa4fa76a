package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// systemRole frames the LLM as an analyst rather than a storyteller.
const systemRole = "You are a concise analyst."

const periodLayout = "2006-01"

// Insight is a generated narrative with the prompt that produced it and
// the sources that ground it.
type Insight struct {
	Content string
	Prompt  string
	Sources []Source
}

// Composer turns surge records into a grounded natural-language prompt,
// backed by web search snippets, and delegates text generation to the LLM.
type Composer struct {
	searcher      WebSearcher
	llm           Generator
	maxPerKeyword int
	logger        *slog.Logger
}

// NewComposer creates an insight composer.
func NewComposer(searcher WebSearcher, llm Generator, maxPerKeyword int, logger *slog.Logger) *Composer {
	return &Composer{
		searcher:      searcher,
		llm:           llm,
		maxPerKeyword: maxPerKeyword,
		logger:        logger.With("component", "insight_composer"),
	}
}

// Generate searches the web for each surge keyword, builds the prompt,
// and asks the LLM for the narrative. A failed search for one keyword is
// logged and skipped — the narrative just loses that keyword's sources —
// but a failed completion call is surfaced as an error.
func (c *Composer) Generate(ctx context.Context, surges []types.SurgeRecord, start, end time.Time, userPrompt string) (*Insight, error) {
	sources := c.collectSources(ctx, surges, start, end)
	prompt := buildPrompt(start, end, surges, userPrompt, formatSources(sources))

	c.logger.Info("requesting summary", "surge_keywords", len(surges), "sources", len(sources))
	content, err := c.llm.Generate(ctx, systemRole, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &Insight{
		Content: strings.TrimSpace(content),
		Prompt:  prompt,
		Sources: sources,
	}, nil
}

// collectSources searches per keyword and deduplicates hits by URL across
// the whole batch.
func (c *Composer) collectSources(ctx context.Context, surges []types.SurgeRecord, start, end time.Time) []Source {
	seen := make(map[string]struct{})
	var sources []Source

	for _, s := range surges {
		query := buildQuery(s.Keyword, start, end)
		hits, err := c.searcher.Search(ctx, query, c.maxPerKeyword)
		if err != nil {
			c.logger.Warn("web search failed, continuing without keyword sources",
				"keyword", s.Keyword, "error", err)
			continue
		}
		for _, hit := range hits {
			if _, dup := seen[hit.URL]; dup {
				continue
			}
			seen[hit.URL] = struct{}{}
			hit.Keyword = s.Keyword
			sources = append(sources, hit)
		}
	}
	return sources
}

// buildQuery forms the per-keyword search query: keyword, period labels,
// and a Korean issue qualifier.
func buildQuery(keyword string, start, end time.Time) string {
	return fmt.Sprintf("%s %s %s 한국 이슈",
		keyword, start.Format(periodLayout), end.Format(periodLayout))
}

// formatSources renders the numbered source list: [n] title - snippet (url).
func formatSources(sources []Source) string {
	var b strings.Builder
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URL
		}
		snippet := strings.TrimSpace(strings.ReplaceAll(s.Snippet, "\n", " "))
		fmt.Fprintf(&b, "[%d] %s - %s (%s)\n", i+1, title, snippet, s.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildPrompt assembles the deterministic prompt: period, surge bullets,
// the user's request, the numbered sources, and the expected output shape.
func buildPrompt(start, end time.Time, surges []types.SurgeRecord, userPrompt, sourcesBlock string) string {
	period := fmt.Sprintf("%s ~ %s", start.Format(periodLayout), end.Format(periodLayout))

	var surgeLines []string
	for _, s := range surges {
		surgeLines = append(surgeLines, fmt.Sprintf(
			"- %s: first=%d, last=%d, change=%d, pct_change=%.2f",
			s.Keyword, s.First, s.Last, s.Change, s.PctChange))
	}
	surgeText := "- (no surge keywords)"
	if len(surgeLines) > 0 {
		surgeText = strings.Join(surgeLines, "\n")
	}

	return "You are a research assistant. Answer in Korean.\n" +
		"Use the sources to ground your explanation. Cite sources like [1], [2].\n\n" +
		"기간: " + period + "\n" +
		"급등 키워드(요약 데이터):\n" +
		surgeText + "\n\n" +
		"사용자 요청: " + userPrompt + "\n\n" +
		"웹 검색 결과:\n" +
		sourcesBlock + "\n\n" +
		"출력 형식:\n" +
		"1) 요약(2~3문장)\n" +
		"2) 키워드별 근거(키워드 -> 사건/이슈 설명)\n" +
		"3) 인사이트(1~2문장)\n"
}
