package crawler

import (
	"context"
	"log/slog"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// Controller drives one category's weekly collection run over a single
// browser page. Anchors are visited strictly in sequence: every search
// depends on the page state left by the previous one, so no two weeks can
// be fetched concurrently against the shared session.
type Controller struct {
	cfg       config.CrawlerConfig
	extractor *Extractor
	logger    *slog.Logger
	sleep     func(time.Duration)
}

// NewController creates a crawl controller.
func NewController(cfg config.CrawlerConfig, logger *slog.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		extractor: NewExtractor(cfg.MaxItemsPerDay, cfg.ElementTimeout, logger),
		logger:    logger.With("component", "crawl_controller"),
		sleep:     time.Sleep,
	}
}

// CollectCategory collects every weekly block for one category within
// [start, end]. Navigation and category selection failures are fatal —
// nothing downstream is meaningful without them. A failure on a single
// anchor week is logged and skipped so one bad week cannot abort a
// multi-month range; whatever was collected is still returned.
func (c *Controller) CollectCategory(ctx context.Context, page Page, cat types.Category, start, end time.Time) ([]types.NewsItem, error) {
	c.logger.Info("collecting weekly news", "category", cat, "start", start.Format(dateLayout), "end", end.Format(dateLayout))

	if err := c.openListing(page, cat); err != nil {
		return nil, err
	}

	anchors := WeeklyAnchors(start, end, time.Weekday(c.cfg.AnchorWeekday))
	c.logger.Debug("anchors generated", "count", len(anchors))

	var collected []types.NewsItem
	for _, anchor := range anchors {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		anchorStr := anchor.Format(dateLayout)
		c.logger.Info("processing week", "anchor", anchorStr, "category", cat)

		if err := c.searchByDate(page, anchor); err != nil {
			c.logger.Error("week search failed, skipping to next anchor",
				"anchor", anchorStr, "error", err)
			continue
		}

		rows := c.extractor.ExtractVisibleWeek(page, cat)
		kept := 0
		for _, row := range rows {
			// The panel can show adjacent-week spillover.
			if row.Date.Before(start) || row.Date.After(end) {
				continue
			}
			collected = append(collected, row)
			kept++
		}
		c.logger.Debug("anchor done", "anchor", anchorStr, "extracted", len(rows), "kept", kept)
	}

	c.logger.Info("collection finished", "category", cat, "rows", len(collected))
	return collected, nil
}

// openListing navigates to the weekend-news page and applies the category
// filter. Both steps are preconditions for correct week data, so either
// failing aborts the run.
func (c *Controller) openListing(page Page, cat types.Category) error {
	if err := page.Navigate(WeekendNewsURL); err != nil {
		return &types.NavigationError{URL: WeekendNewsURL, Step: "navigate", Err: err}
	}
	c.sleep(c.cfg.PageSettle)

	value, err := categorySelectValue(cat)
	if err != nil {
		return &types.NavigationError{URL: WeekendNewsURL, Step: "select_category", Err: err}
	}
	if err := page.SelectOption(selCategory, value); err != nil {
		return &types.NavigationError{URL: WeekendNewsURL, Step: "select_category", Err: err}
	}
	c.sleep(c.cfg.SelectSettle)
	return nil
}

// searchByDate submits one anchor date into the search control and waits
// out the settle window. The page has no completion signal for the search,
// only the eventual re-render of the results panel, hence the fixed grace
// period after the click.
func (c *Controller) searchByDate(page Page, anchor time.Time) error {
	ds := anchor.Format(dateLayout)

	input, err := page.WaitElement(selSearchInput, c.cfg.ElementTimeout)
	if err != nil {
		return &types.ExtractError{Anchor: ds, Selector: selSearchInput, Err: err}
	}

	if err := input.Click(); err != nil {
		return &types.ExtractError{Anchor: ds, Selector: selSearchInput, Err: err}
	}
	c.sleep(c.cfg.FocusSettle)

	if err := input.Input(ds); err != nil {
		return &types.ExtractError{Anchor: ds, Selector: selSearchInput, Err: err}
	}
	c.sleep(c.cfg.TypeSettle)

	btn, err := page.Element(selSearchBtn)
	if err != nil {
		return &types.ExtractError{Anchor: ds, Selector: selSearchBtn, Err: err}
	}
	if err := btn.Click(); err != nil {
		return &types.ExtractError{Anchor: ds, Selector: selSearchBtn, Err: err}
	}
	c.sleep(c.cfg.SearchSettle)

	return nil
}
