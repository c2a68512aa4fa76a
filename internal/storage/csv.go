package storage

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

const csvDateLayout = "2006-01-02"

// keywordSep joins an item's keyword list into a single CSV cell.
const keywordSep = "|"

// --- Raw news store ---

// CSVNewsStore streams raw news rows into a CSV file, one file per
// category per run.
type CSVNewsStore struct {
	path   string
	file   *os.File
	writer *csv.Writer
	count  int
	logger *slog.Logger
}

// NewCSVNewsStore creates the output file and writes the header row.
func NewCSVNewsStore(outputPath string, logger *slog.Logger) (*CSVNewsStore, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "category", "title", "article_count"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	return &CSVNewsStore{
		path:   outputPath,
		file:   f,
		writer: w,
		logger: logger.With("component", "csv_store"),
	}, nil
}

func (s *CSVNewsStore) Name() string { return "csv" }

func (s *CSVNewsStore) Store(items []types.NewsItem) error {
	for _, item := range items {
		row := []string{
			item.Date.Format(csvDateLayout),
			string(item.Category),
			item.Title,
			item.CountString(),
		}
		if err := s.writer.Write(row); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
		s.count++
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return nil
}

func (s *CSVNewsStore) Close() error {
	s.writer.Flush()
	s.logger.Info("CSV written", "path", s.path, "rows", s.count)
	return s.file.Close()
}

// --- Readers / writers for derived datasets ---

// header maps column names to indices and fails loudly when a required
// column is absent: aggregation correctness depends on every column being
// where it claims to be.
type header map[string]int

func readHeader(records [][]string, source string, required ...string) (header, [][]string, error) {
	if len(records) == 0 {
		return nil, nil, &types.DataError{Source: source, Err: fmt.Errorf("empty file")}
	}
	h := make(header, len(records[0]))
	for i, name := range records[0] {
		h[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, nil, &types.DataError{Source: source, Err: fmt.Errorf("missing required column %q", col)}
		}
	}
	return h, records[1:], nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// ReadNewsCSV loads one raw news file. Rows with an unparseable date are
// dropped (the crawl writes its own dates, so these only appear in
// hand-edited files); an unknown category fails the whole read.
func ReadNewsCSV(path string) ([]types.NewsItem, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("read news CSV %s: %w", path, err)
	}
	h, rows, err := readHeader(records, path, "date", "category", "title", "article_count")
	if err != nil {
		return nil, err
	}

	var items []types.NewsItem
	for _, row := range rows {
		date, err := time.Parse(csvDateLayout, strings.TrimSpace(row[h["date"]]))
		if err != nil {
			continue
		}
		cat, err := types.ParseCategory(strings.TrimSpace(row[h["category"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: err}
		}

		item := types.NewsItem{
			Date:     date,
			Category: cat,
			Title:    row[h["title"]],
		}
		if raw := strings.TrimSpace(row[h["article_count"]]); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				item.ArticleCount = &n
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteProcessedCSV saves the clean dataset with keywords joined by "|".
func WriteProcessedCSV(path string, items []types.ProcessedItem) error {
	return writeCSV(path, []string{"date", "category", "title", "article_count", "keywords"},
		len(items), func(i int) []string {
			it := items[i]
			return []string{
				it.Date.Format(csvDateLayout),
				string(it.Category),
				it.Title,
				it.CountString(),
				strings.Join(it.Keywords, keywordSep),
			}
		})
}

// ReadProcessedCSV loads the clean dataset.
func ReadProcessedCSV(path string) ([]types.ProcessedItem, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("read processed CSV %s: %w", path, err)
	}
	h, rows, err := readHeader(records, path, "date", "category", "title", "article_count", "keywords")
	if err != nil {
		return nil, err
	}

	var items []types.ProcessedItem
	for _, row := range rows {
		date, err := time.Parse(csvDateLayout, strings.TrimSpace(row[h["date"]]))
		if err != nil {
			continue
		}
		cat, err := types.ParseCategory(strings.TrimSpace(row[h["category"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: err}
		}

		item := types.ProcessedItem{
			NewsItem: types.NewsItem{
				Date:     date,
				Category: cat,
				Title:    row[h["title"]],
			},
		}
		if raw := strings.TrimSpace(row[h["article_count"]]); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				item.ArticleCount = &n
			}
		}
		if raw := strings.TrimSpace(row[h["keywords"]]); raw != "" {
			for _, kw := range strings.Split(raw, keywordSep) {
				if kw = strings.TrimSpace(kw); kw != "" {
					item.Keywords = append(item.Keywords, kw)
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteMonthlyCSV saves the aggregated monthly keyword counts.
func WriteMonthlyCSV(path string, counts []types.MonthlyCount) error {
	return writeCSV(path, []string{"keyword", "category", "year", "month", "count"},
		len(counts), func(i int) []string {
			c := counts[i]
			return []string{
				c.Keyword,
				string(c.Category),
				strconv.Itoa(c.Year),
				strconv.Itoa(c.Month),
				strconv.Itoa(c.Count),
			}
		})
}

// ReadMonthlyCSV loads aggregated monthly keyword counts.
func ReadMonthlyCSV(path string) ([]types.MonthlyCount, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("read monthly CSV %s: %w", path, err)
	}
	h, rows, err := readHeader(records, path, "keyword", "category", "year", "month", "count")
	if err != nil {
		return nil, err
	}

	var counts []types.MonthlyCount
	for _, row := range rows {
		cat, err := types.ParseCategory(strings.TrimSpace(row[h["category"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: err}
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[h["year"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad year: %w", err)}
		}
		month, err := strconv.Atoi(strings.TrimSpace(row[h["month"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad month: %w", err)}
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[h["count"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad count: %w", err)}
		}
		counts = append(counts, types.MonthlyCount{
			Keyword:  row[h["keyword"]],
			Category: cat,
			Year:     year,
			Month:    month,
			Count:    count,
		})
	}
	return counts, nil
}

// WriteKeywordCountsCSV saves a (keyword, count) table.
func WriteKeywordCountsCSV(path string, rows []types.KeywordCount) error {
	return writeCSV(path, []string{"keyword", "count"}, len(rows), func(i int) []string {
		return []string{rows[i].Keyword, strconv.Itoa(rows[i].Count)}
	})
}

// WriteTimeseriesCSV saves the top keyword monthly timeseries.
func WriteTimeseriesCSV(path string, points []types.TimeseriesPoint) error {
	return writeCSV(path, []string{"year", "month", "keyword", "count"},
		len(points), func(i int) []string {
			p := points[i]
			return []string{
				strconv.Itoa(p.Year),
				strconv.Itoa(p.Month),
				p.Keyword,
				strconv.Itoa(p.Count),
			}
		})
}

// ReadTimeseriesCSV loads a top keyword monthly timeseries.
func ReadTimeseriesCSV(path string) ([]types.TimeseriesPoint, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("read timeseries CSV %s: %w", path, err)
	}
	h, rows, err := readHeader(records, path, "year", "month", "keyword", "count")
	if err != nil {
		return nil, err
	}

	var points []types.TimeseriesPoint
	for _, row := range rows {
		year, err := strconv.Atoi(strings.TrimSpace(row[h["year"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad year: %w", err)}
		}
		month, err := strconv.Atoi(strings.TrimSpace(row[h["month"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad month: %w", err)}
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[h["count"]]))
		if err != nil {
			return nil, &types.DataError{Source: path, Err: fmt.Errorf("bad count: %w", err)}
		}
		points = append(points, types.TimeseriesPoint{
			Year:    year,
			Month:   month,
			Keyword: row[h["keyword"]],
			Count:   count,
		})
	}
	return points, nil
}

// writeCSV writes header + n rows produced by rowFn, creating parent
// directories as needed.
func writeCSV(path string, headerRow []string, n int, rowFn func(i int) []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headerRow); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	for i := 0; i < n; i++ {
		if err := w.Write(rowFn(i)); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return nil
}
