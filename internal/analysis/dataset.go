package analysis

import (
	"log/slog"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/keywords"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// BuildDataset turns raw crawled rows into the clean dataset: rows missing
// a date or title are dropped, duplicates on (date, category, title) are
// removed keeping the first occurrence, and each surviving row gets its
// cleaned title and keyword set attached.
func BuildDataset(rows []types.NewsItem, ex *keywords.Extractor, logger *slog.Logger) []types.ProcessedItem {
	log := logger.With("component", "dataset_builder")

	type dedupKey struct {
		date     string
		category types.Category
		title    string
	}
	seen := make(map[dedupKey]struct{}, len(rows))

	var out []types.ProcessedItem
	dropped, dups := 0, 0
	for _, row := range rows {
		if row.Date.IsZero() || row.Title == "" {
			dropped++
			continue
		}
		key := dedupKey{row.Date.Format("2006-01-02"), row.Category, row.Title}
		if _, dup := seen[key]; dup {
			dups++
			continue
		}
		seen[key] = struct{}{}

		out = append(out, types.ProcessedItem{
			NewsItem:   row,
			CleanTitle: keywords.Clean(row.Title),
			Keywords:   ex.Extract(row.Title),
		})
	}

	log.Info("dataset built", "rows", len(out), "dropped", dropped, "duplicates", dups)
	return out
}
