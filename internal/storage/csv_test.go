package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func intp(n int) *int { return &n }

func TestCSVNewsStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "total_news.csv")

	store, err := NewCSVNewsStore(path, testLogger)
	if err != nil {
		t.Fatalf("NewCSVNewsStore: %v", err)
	}

	items := []types.NewsItem{
		{
			Date:         time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
			Category:     types.CategoryTotal,
			Title:        "쉼표, 포함된 \"제목\"",
			ArticleCount: intp(12),
		},
		{
			Date:     time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC),
			Category: types.CategoryEconomy,
			Title:    "집계 없는 기사",
		},
	}
	if err := store.Store(items); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadNewsCSV(path)
	if err != nil {
		t.Fatalf("ReadNewsCSV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Title != items[0].Title {
		t.Errorf("title round trip: got %q, want %q", got[0].Title, items[0].Title)
	}
	if got[0].ArticleCount == nil || *got[0].ArticleCount != 12 {
		t.Errorf("article count round trip: got %v", got[0].ArticleCount)
	}
	if got[1].ArticleCount != nil {
		t.Errorf("missing count must stay nil, got %d", *got[1].ArticleCount)
	}
	if got[1].Category != types.CategoryEconomy {
		t.Errorf("category round trip: got %s", got[1].Category)
	}
}

func TestReadNewsCSVSkipsBadDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.csv")
	content := "date,category,title,article_count\n" +
		"not-a-date,total,버려질 행,3\n" +
		"2025-01-06,total,유효한 행,5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := ReadNewsCSV(path)
	if err != nil {
		t.Fatalf("ReadNewsCSV: %v", err)
	}
	if len(items) != 1 || items[0].Title != "유효한 행" {
		t.Errorf("expected only the valid row, got %v", items)
	}
}

func TestReadNewsCSVUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.csv")
	content := "date,category,title,article_count\n" +
		"2025-01-06,politics,정치 기사,5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadNewsCSV(path)
	var dataErr *types.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *types.DataError for unknown category, got %v", err)
	}
}

func TestReadNewsCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.csv")
	content := "date,category,title\n2025-01-06,total,열 부족\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadNewsCSV(path)
	var dataErr *types.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *types.DataError for missing column, got %v", err)
	}
}

func TestProcessedCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean_dataset.csv")

	items := []types.ProcessedItem{
		{
			NewsItem: types.NewsItem{
				Date:         time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
				Category:     types.CategoryEconomy,
				Title:        "금리 동결 전망",
				ArticleCount: intp(7),
			},
			CleanTitle: "금리 동결 전망",
			Keywords:   []string{"금리", "동결", "전망"},
		},
		{
			NewsItem: types.NewsItem{
				Date:     time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC),
				Category: types.CategoryTotal,
				Title:    "키워드 없음",
			},
		},
	}
	if err := WriteProcessedCSV(path, items); err != nil {
		t.Fatalf("WriteProcessedCSV: %v", err)
	}

	got, err := ReadProcessedCSV(path)
	if err != nil {
		t.Fatalf("ReadProcessedCSV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Keywords, []string{"금리", "동결", "전망"}) {
		t.Errorf("keywords round trip: got %v", got[0].Keywords)
	}
	if got[1].Keywords != nil {
		t.Errorf("empty keyword cell must read back nil, got %v", got[1].Keywords)
	}
}

func TestMonthlyCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthly.csv")

	counts := []types.MonthlyCount{
		{Keyword: "환율", Category: types.CategoryEconomy, Year: 2025, Month: 1, Count: 42},
		{Keyword: "물가", Category: types.CategoryTotal, Year: 2025, Month: 2, Count: 9},
	}
	if err := WriteMonthlyCSV(path, counts); err != nil {
		t.Fatalf("WriteMonthlyCSV: %v", err)
	}

	got, err := ReadMonthlyCSV(path)
	if err != nil {
		t.Fatalf("ReadMonthlyCSV: %v", err)
	}
	if !reflect.DeepEqual(got, counts) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, counts)
	}
}

func TestMonthlyCSVBadCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthly.csv")
	content := "keyword,category,year,month,count\n환율,economy,2025,1,많음\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadMonthlyCSV(path)
	var dataErr *types.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *types.DataError for non-numeric count, got %v", err)
	}
}

func TestTimeseriesCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeseries.csv")

	points := []types.TimeseriesPoint{
		{Year: 2025, Month: 1, Keyword: "금리", Count: 17},
		{Year: 2025, Month: 2, Keyword: "금리", Count: 4},
	}
	if err := WriteTimeseriesCSV(path, points); err != nil {
		t.Fatalf("WriteTimeseriesCSV: %v", err)
	}

	got, err := ReadTimeseriesCSV(path)
	if err != nil {
		t.Fatalf("ReadTimeseriesCSV: %v", err)
	}
	if !reflect.DeepEqual(got, points) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, points)
	}
}

func TestReadTimeseriesCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTimeseriesCSV(path)
	var dataErr *types.DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *types.DataError for empty file, got %v", err)
	}
}

func TestWriteKeywordCountsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordcloud.csv")

	rows := []types.KeywordCount{
		{Keyword: "반도체", Count: 31},
		{Keyword: "환율", Count: 12},
	}
	if err := WriteKeywordCountsCSV(path, rows); err != nil {
		t.Fatalf("WriteKeywordCountsCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "keyword,count\n반도체,31\n환율,12\n"
	if string(raw) != want {
		t.Errorf("file content = %q, want %q", string(raw), want)
	}
}
