package insight

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Source is one web search hit used to ground the narrative.
type Source struct {
	Title   string
	URL     string
	Snippet string
	Keyword string
}

// WebSearcher finds web sources for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Source, error)
}

const (
	ddgEndpoint  = "https://html.duckduckgo.com/html/"
	ddgUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DuckDuckGo queries the DuckDuckGo HTML endpoint, which serves plain
// server-rendered results with no API key.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewDuckDuckGo creates a DuckDuckGo searcher.
func NewDuckDuckGo(timeout time.Duration, logger *slog.Logger) *DuckDuckGo {
	return &DuckDuckGo{
		endpoint: ddgEndpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "web_search"),
	}
}

// Search runs one query and returns up to maxResults sources.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Source, error) {
	reqURL := d.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ddgUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var sources []Source
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a")
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := resolveResultURL(href)
		if target == "" {
			return true
		}

		sources = append(sources, Source{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return len(sources) < maxResults
	})

	d.logger.Debug("search complete", "query", query, "results", len(sources))
	return sources, nil
}

// resolveResultURL unwraps DuckDuckGo's redirect links, which carry the
// real destination in the uddg query parameter.
func resolveResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.String()
	}
	return ""
}
