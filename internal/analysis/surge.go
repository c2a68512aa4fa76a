package analysis

import (
	"sort"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// DetectSurges finds the keywords whose counts grew the most, relatively,
// between the first and last observed months inside [start, end].
//
// For each keyword the chronologically first and last in-range counts are
// compared — not the min and max, so a mid-range spike that subsides does
// not register as a surge. When the first count is zero, zeroBaseline is
// substituted as the divisor so went-from-nothing keywords still produce a
// large, informative ratio instead of a division by zero.
//
// Results are stable-sorted by PctChange descending (ties keep the series'
// first-appearance order) and truncated to topN. An empty in-range series
// yields an empty result, not an error.
func DetectSurges(series []types.TimeseriesPoint, start, end time.Time, topN int, zeroBaseline float64) []types.SurgeRecord {
	type kwSeries struct {
		keyword string
		points  []types.TimeseriesPoint
	}

	// Group in first-appearance order; a month is in range when its
	// first day falls inside [start, end].
	index := make(map[string]int)
	var groups []kwSeries
	for _, p := range series {
		d := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
		if d.Before(start) || d.After(end) {
			continue
		}
		i, ok := index[p.Keyword]
		if !ok {
			i = len(groups)
			index[p.Keyword] = i
			groups = append(groups, kwSeries{keyword: p.Keyword})
		}
		groups[i].points = append(groups[i].points, p)
	}
	if len(groups) == 0 {
		return nil
	}

	records := make([]types.SurgeRecord, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.points, func(i, j int) bool {
			if g.points[i].Year != g.points[j].Year {
				return g.points[i].Year < g.points[j].Year
			}
			return g.points[i].Month < g.points[j].Month
		})

		first := g.points[0].Count
		last := g.points[len(g.points)-1].Count
		change := last - first

		baseline := float64(first)
		if first == 0 {
			baseline = zeroBaseline
		}

		records = append(records, types.SurgeRecord{
			Keyword:   g.keyword,
			First:     first,
			Last:      last,
			Change:    change,
			PctChange: float64(change) / baseline,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PctChange > records[j].PctChange
	})
	if len(records) > topN {
		records = records[:topN]
	}
	return records
}
