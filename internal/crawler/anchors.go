package crawler

import "time"

// WeeklyAnchors returns every date with the given weekday inside
// [start, end], in ascending order, spaced exactly seven days apart.
// The weekend-news page keys each week's panel on its Friday, so a crawl
// run visits one anchor per week.
func WeeklyAnchors(start, end time.Time, weekday time.Weekday) []time.Time {
	daysAhead := (int(weekday) - int(start.Weekday()) + 7) % 7
	cur := start.AddDate(0, 0, daysAhead)

	var anchors []time.Time
	for !cur.After(end) {
		anchors = append(anchors, cur)
		cur = cur.AddDate(0, 0, 7)
	}
	return anchors
}
