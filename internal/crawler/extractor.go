package crawler

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// Extractor parses the visible weekly results panel (up to five Mon-Fri
// day-blocks) into NewsItem records. The panel re-renders asynchronously,
// so element handles are never reused across iterations: the container and
// day list are re-located from the live page before every read, and an
// index that has gone out of bounds ends the loop instead of failing it.
type Extractor struct {
	maxItems    int
	waitTimeout time.Duration
	logger      *slog.Logger
}

// NewExtractor creates an extractor capped at maxItems headlines per
// day-block.
func NewExtractor(maxItems int, waitTimeout time.Duration, logger *slog.Logger) *Extractor {
	return &Extractor{
		maxItems:    maxItems,
		waitTimeout: waitTimeout,
		logger:      logger.With("component", "block_extractor"),
	}
}

// ExtractVisibleWeek reads every day-block currently on screen for one
// category. Partial failures shrink the result instead of propagating: a
// bad item skips that item, a bad day-block skips that day, and an absent
// results container yields an empty slice.
func (e *Extractor) ExtractVisibleWeek(page Page, category types.Category) []types.NewsItem {
	container, err := page.WaitElement(selContainer, e.waitTimeout)
	if err != nil {
		e.logger.Error("failed to locate results container", "error", err)
		return nil
	}

	dayBlocks, err := container.Elements(selDayBlock)
	if err != nil {
		e.logger.Error("failed to count day blocks", "error", err)
		return nil
	}
	dayCount := len(dayBlocks)
	e.logger.Debug("day blocks found", "count", dayCount, "category", category)

	var results []types.NewsItem
	for i := 0; i < dayCount; i++ {
		items, more := e.extractDay(page, category, i)
		results = append(results, items...)
		if !more {
			break
		}
	}

	e.logger.Info("week extracted", "items", len(results), "category", category)
	return results
}

// extractDay reads the i-th day-block. It re-acquires the container and
// day list fresh so a re-render between reads cannot leave us holding a
// stale handle. The second return value is false once the day index no
// longer exists on the page.
func (e *Extractor) extractDay(page Page, category types.Category, i int) ([]types.NewsItem, bool) {
	container, err := page.Element(selContainer)
	if err != nil {
		e.logger.Warn("container vanished mid-extract", "day_index", i, "error", err)
		return nil, false
	}
	dayBlocks, err := container.Elements(selDayBlock)
	if err != nil {
		e.logger.Warn("failed to re-locate day blocks", "day_index", i, "error", err)
		return nil, true
	}
	if i >= len(dayBlocks) {
		return nil, false
	}
	day := dayBlocks[i]

	dateStr, err := day.Attribute(attrDayDate)
	if err != nil || dateStr == "" {
		// No date label means an empty day, not a failure.
		return nil, true
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		e.logger.Warn("unparseable day date, skipping block", "date", dateStr, "error", err)
		return nil, true
	}

	rows, err := day.Elements(selItemRow)
	if err != nil {
		e.logger.Warn("failed to list day items", "date", dateStr, "error", err)
		return nil, true
	}
	limit := len(rows)
	if limit > e.maxItems {
		// Best-ranked entries only; the page lists them in rank order.
		limit = e.maxItems
	}

	var items []types.NewsItem
	for j := 0; j < limit; j++ {
		item, err := e.extractItem(rows[j], date, category)
		if err != nil {
			e.logger.Warn("failed to parse item, skipping",
				"date", dateStr, "rank_index", j, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, true
}

// extractItem reads one ranked headline row. The title prefers the full
// text carried in the anchor's title attribute over the truncated visible
// span. A weight that fails to parse is stored as unset, not dropped.
func (e *Extractor) extractItem(row Element, date time.Time, category types.Category) (types.NewsItem, error) {
	anchor, err := row.Element(selTopicRow)
	if err != nil {
		return types.NewsItem{}, err
	}

	title, err := anchor.Attribute("title")
	if err != nil {
		return types.NewsItem{}, err
	}
	if title == "" {
		span, err := anchor.Element(selTopicTitle)
		if err != nil {
			return types.NewsItem{}, err
		}
		text, err := span.Text()
		if err != nil {
			return types.NewsItem{}, err
		}
		title = strings.TrimSpace(text)
	}

	item := types.NewsItem{
		Date:     date,
		Category: category,
		Title:    title,
	}

	if numEl, err := anchor.Element(selTopicCount); err == nil {
		if numText, err := numEl.Text(); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(numText)); err == nil {
				item.ArticleCount = &n
			}
		}
	}

	return item, nil
}
