package crawler

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// --- fake DOM ---

// fakeElem is a static DOM node keyed by selector.
type fakeElem struct {
	attrs    map[string]string
	text     string
	children map[string][]*fakeElem
	inputs   []string
	clicks   int
}

func (e *fakeElem) Attribute(name string) (string, error) { return e.attrs[name], nil }
func (e *fakeElem) Text() (string, error)                 { return e.text, nil }

func (e *fakeElem) Element(selector string) (Element, error) {
	kids := e.children[selector]
	if len(kids) == 0 {
		return nil, fmt.Errorf("no element matching %q", selector)
	}
	return kids[0], nil
}

func (e *fakeElem) Elements(selector string) ([]Element, error) {
	kids := e.children[selector]
	out := make([]Element, len(kids))
	for i, k := range kids {
		out[i] = k
	}
	return out, nil
}

func (e *fakeElem) Input(text string) error {
	e.inputs = append(e.inputs, text)
	return nil
}

func (e *fakeElem) Click() error {
	e.clicks++
	return nil
}

// fakePage serves canned day-blocks keyed by the anchor date last typed
// into the search box. The zero key holds the initially visible week.
type fakePage struct {
	weeks        map[string][]*fakeElem
	current      string
	noContainer  bool
	onContainer  func(p *fakePage)
	searches     int
	failSearchAt int // 1-based search whose button lookup fails, 0 = never
	navErr       error
	navigated    []string
	selected     [][2]string
}

func (p *fakePage) Navigate(url string) error {
	if p.navErr != nil {
		return p.navErr
	}
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) SelectOption(selector, value string) error {
	p.selected = append(p.selected, [2]string{selector, value})
	return nil
}

func (p *fakePage) Element(selector string) (Element, error) {
	switch selector {
	case selContainer:
		return p.containerElem()
	case selSearchBtn:
		if p.failSearchAt > 0 && p.searches == p.failSearchAt {
			return nil, errors.New("button detached")
		}
		return &fakeElem{}, nil
	}
	return nil, fmt.Errorf("no element matching %q", selector)
}

func (p *fakePage) Elements(selector string) ([]Element, error) { return nil, nil }

func (p *fakePage) WaitElement(selector string, timeout time.Duration) (Element, error) {
	switch selector {
	case selContainer:
		return p.containerElem()
	case selSearchInput:
		p.searches++
		return &searchInput{page: p}, nil
	}
	return nil, fmt.Errorf("no element matching %q", selector)
}

func (p *fakePage) containerElem() (Element, error) {
	if p.onContainer != nil {
		p.onContainer(p)
	}
	if p.noContainer {
		return nil, errors.New("results container not found")
	}
	return &containerElem{page: p}, nil
}

// containerElem resolves day-blocks against the page's current anchor so
// tests can swap the visible week between reads.
type containerElem struct {
	fakeElem
	page *fakePage
}

func (c *containerElem) Elements(selector string) ([]Element, error) {
	if selector != selDayBlock {
		return nil, fmt.Errorf("no element matching %q", selector)
	}
	days := c.page.weeks[c.page.current]
	out := make([]Element, len(days))
	for i, d := range days {
		out[i] = d
	}
	return out, nil
}

// searchInput records typed anchor dates on the page.
type searchInput struct {
	fakeElem
	page *fakePage
}

func (s *searchInput) Input(text string) error {
	s.page.current = text
	return nil
}

func dayBlock(date string, items ...*fakeElem) *fakeElem {
	return &fakeElem{
		attrs:    map[string]string{attrDayDate: date},
		children: map[string][]*fakeElem{selItemRow: items},
	}
}

func newsRow(title, count string) *fakeElem {
	anchor := &fakeElem{
		attrs:    map[string]string{"title": title},
		children: map[string][]*fakeElem{},
	}
	if count != "" {
		anchor.children[selTopicCount] = []*fakeElem{{text: count}}
	}
	return &fakeElem{children: map[string][]*fakeElem{selTopicRow: {anchor}}}
}

func weekPage(days ...*fakeElem) *fakePage {
	return &fakePage{weeks: map[string][]*fakeElem{"": days}}
}

// --- Extractor tests ---

func TestExtractVisibleWeek(t *testing.T) {
	page := weekPage(
		dayBlock("2025-01-06", newsRow("반도체 수출 반등", "12"), newsRow("금리 동결 전망", "7")),
		dayBlock("2025-01-07", newsRow("부동산 규제 완화", "")),
	)

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryEconomy)

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "반도체 수출 반등" {
		t.Errorf("expected first title from rank order, got %q", first.Title)
	}
	if first.Date.Format(dateLayout) != "2025-01-06" {
		t.Errorf("expected date 2025-01-06, got %s", first.Date.Format(dateLayout))
	}
	if first.Category != types.CategoryEconomy {
		t.Errorf("expected category economy, got %s", first.Category)
	}
	if first.ArticleCount == nil || *first.ArticleCount != 12 {
		t.Errorf("expected article count 12, got %v", first.ArticleCount)
	}

	if items[2].ArticleCount != nil {
		t.Errorf("row without a count badge must have nil count, got %d", *items[2].ArticleCount)
	}
}

func TestExtractCapsItemsPerDay(t *testing.T) {
	var rows []*fakeElem
	for i := 1; i <= 15; i++ {
		rows = append(rows, newsRow(fmt.Sprintf("headline %02d", i), fmt.Sprintf("%d", 100-i)))
	}
	page := weekPage(dayBlock("2025-01-06", rows...))

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 10 {
		t.Fatalf("expected cap of 10 items, got %d", len(items))
	}
	for i, item := range items {
		want := fmt.Sprintf("headline %02d", i+1)
		if item.Title != want {
			t.Errorf("item %d: expected %q (page rank order), got %q", i, want, item.Title)
		}
	}
}

func TestExtractMissingContainer(t *testing.T) {
	page := &fakePage{noContainer: true, weeks: map[string][]*fakeElem{}}

	ex := NewExtractor(10, 10*time.Millisecond, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 0 {
		t.Errorf("expected no items from an absent container, got %d", len(items))
	}
}

func TestExtractSkipsUndatedBlock(t *testing.T) {
	page := weekPage(
		dayBlock("", newsRow("무시될 항목", "3")),
		dayBlock("2025-01-07", newsRow("살아남는 항목", "5")),
	)

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 1 {
		t.Fatalf("expected 1 item after skipping undated block, got %d", len(items))
	}
	if items[0].Title != "살아남는 항목" {
		t.Errorf("expected item from the dated block, got %q", items[0].Title)
	}
}

func TestExtractUnparseableWeight(t *testing.T) {
	page := weekPage(dayBlock("2025-01-06", newsRow("집계 불명 기사", "다수")))

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 1 {
		t.Fatalf("expected the item to survive a bad count, got %d items", len(items))
	}
	if items[0].ArticleCount != nil {
		t.Errorf("expected nil article count, got %d", *items[0].ArticleCount)
	}
	if items[0].Weight() != 0 {
		t.Errorf("expected weight 0 for unknown count, got %d", items[0].Weight())
	}
}

func TestExtractTitleFallback(t *testing.T) {
	anchor := &fakeElem{
		attrs: map[string]string{},
		children: map[string][]*fakeElem{
			selTopicTitle: {{text: "  잘린 제목...  "}},
		},
	}
	row := &fakeElem{children: map[string][]*fakeElem{selTopicRow: {anchor}}}
	page := weekPage(dayBlock("2025-01-06", row))

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "잘린 제목..." {
		t.Errorf("expected trimmed span text fallback, got %q", items[0].Title)
	}
}

func TestExtractStopsWhenBlocksDisappear(t *testing.T) {
	page := weekPage(
		dayBlock("2025-01-06", newsRow("첫째 날", "4")),
		dayBlock("2025-01-07", newsRow("둘째 날", "9")),
		dayBlock("2025-01-08", newsRow("셋째 날", "2")),
	)
	fetches := 0
	page.onContainer = func(p *fakePage) {
		fetches++
		// Simulate a re-render wiping the panel after the first day read.
		if fetches > 2 {
			p.weeks[""] = p.weeks[""][:1]
		}
	}

	ex := NewExtractor(10, time.Second, testLogger)
	items := ex.ExtractVisibleWeek(page, types.CategoryTotal)

	if len(items) != 1 {
		t.Fatalf("expected extraction to stop at the shrunken panel with 1 item, got %d", len(items))
	}
	if items[0].Title != "첫째 날" {
		t.Errorf("expected the pre-render item, got %q", items[0].Title)
	}
}
