package analysis

import (
	"sort"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// keywordTotals sums counts per keyword and returns them sorted by total
// desc, keyword asc.
func keywordTotals(counts []types.MonthlyCount) []types.KeywordCount {
	totals := make(map[string]int)
	for _, c := range counts {
		totals[c.Keyword] += c.Count
	}

	out := make([]types.KeywordCount, 0, len(totals))
	for kw, n := range totals {
		out = append(out, types.KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

// WordcloudTable returns the topN keywords by total count across all
// categories and months, for wordcloud-style rendering downstream.
func WordcloudTable(counts []types.MonthlyCount, topN int) []types.KeywordCount {
	totals := keywordTotals(counts)
	if len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}

// TopTimeseries selects the topN keywords by total count and returns their
// monthly series, summed across categories, sorted by (keyword, year,
// month).
func TopTimeseries(counts []types.MonthlyCount, topN int) []types.TimeseriesPoint {
	totals := keywordTotals(counts)
	if len(totals) > topN {
		totals = totals[:topN]
	}
	top := make(map[string]struct{}, len(totals))
	for _, t := range totals {
		top[t.Keyword] = struct{}{}
	}

	type monthKey struct {
		keyword     string
		year, month int
	}
	sums := make(map[monthKey]int)
	for _, c := range counts {
		if _, ok := top[c.Keyword]; !ok {
			continue
		}
		sums[monthKey{c.Keyword, c.Year, c.Month}] += c.Count
	}

	out := make([]types.TimeseriesPoint, 0, len(sums))
	for key, n := range sums {
		out = append(out, types.TimeseriesPoint{
			Year:    key.year,
			Month:   key.month,
			Keyword: key.keyword,
			Count:   n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Keyword != b.Keyword {
			return a.Keyword < b.Keyword
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return out
}

// EconomyTop returns the topN keywords by total count within the economy
// category only.
func EconomyTop(counts []types.MonthlyCount, topN int) []types.KeywordCount {
	var eco []types.MonthlyCount
	for _, c := range counts {
		if c.Category == types.CategoryEconomy {
			eco = append(eco, c)
		}
	}
	totals := keywordTotals(eco)
	if len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}
