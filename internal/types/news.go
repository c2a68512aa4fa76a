package types

import (
	"fmt"
	"strconv"
	"time"
)

// Category identifies which BIGKinds issue category a row belongs to.
type Category string

const (
	CategoryTotal   Category = "total"
	CategoryEconomy Category = "economy"
)

// ParseCategory converts a raw string into a Category.
// Unknown values are rejected: downstream aggregation keys on the
// category, so a bad value must fail loudly rather than pollute buckets.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTotal, CategoryEconomy:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// Categories lists all supported categories in collection order.
func Categories() []Category {
	return []Category{CategoryTotal, CategoryEconomy}
}

// NewsItem is a single ranked headline scraped from one day-block of the
// weekly results panel. ArticleCount is nil when the trailing counter on
// the page could not be parsed.
type NewsItem struct {
	Date         time.Time
	Category     Category
	Title        string
	ArticleCount *int
}

// Weight returns the item's article count, or 0 when unset.
func (n NewsItem) Weight() int {
	if n.ArticleCount == nil {
		return 0
	}
	return *n.ArticleCount
}

// CountString renders ArticleCount for CSV export, empty when unset.
func (n NewsItem) CountString() string {
	if n.ArticleCount == nil {
		return ""
	}
	return strconv.Itoa(*n.ArticleCount)
}

// ProcessedItem is a NewsItem with its cleaned title and extracted
// keyword set attached.
type ProcessedItem struct {
	NewsItem
	CleanTitle string
	Keywords   []string
}

// MonthlyCount is the aggregated weight of one keyword in one category
// for one calendar month.
type MonthlyCount struct {
	Keyword  string
	Category Category
	Year     int
	Month    int
	Count    int
}

// TimeseriesPoint is one monthly observation of a keyword, summed across
// categories.
type TimeseriesPoint struct {
	Year    int
	Month   int
	Keyword string
	Count   int
}

// KeywordCount is a (keyword, total count) pair used by the top-N tables.
type KeywordCount struct {
	Keyword string
	Count   int
}

// SurgeRecord describes a keyword's relative change between the first and
// last observed months of a range.
type SurgeRecord struct {
	Keyword   string
	First     int
	Last      int
	Change    int
	PctChange float64
}
