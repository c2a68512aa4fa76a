package analysis

import (
	"sort"
	"strings"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// AggregateMonthly explodes each item's keyword set and sums weights per
// (keyword, category, year, month).
//
// Every keyword of an item receives the item's full article count, so an
// item with three keywords contributes its weight three times — once to
// each keyword's series. Totals are therefore conserved within a single
// keyword's series, never across keywords summed together. This mirrors
// how the signal has always been counted and is kept deliberately.
//
// The output ordering is a contract consumers rely on for top-N-per-period
// reads: category asc, year asc, month asc, count desc (keyword asc on
// equal counts so output is deterministic).
func AggregateMonthly(items []types.ProcessedItem) []types.MonthlyCount {
	type groupKey struct {
		keyword  string
		category types.Category
		year     int
		month    int
	}

	totals := make(map[groupKey]int)
	for _, item := range items {
		year, month := item.Date.Year(), int(item.Date.Month())
		for _, kw := range item.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			totals[groupKey{kw, item.Category, year, month}] += item.Weight()
		}
	}

	out := make([]types.MonthlyCount, 0, len(totals))
	for key, count := range totals {
		out = append(out, types.MonthlyCount{
			Keyword:  key.keyword,
			Category: key.category,
			Year:     key.year,
			Month:    key.month,
			Count:    count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Keyword < b.Keyword
	})
	return out
}
