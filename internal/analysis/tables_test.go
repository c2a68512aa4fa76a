package analysis

import (
	"reflect"
	"testing"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

func monthly(kw string, cat types.Category, year, month, count int) types.MonthlyCount {
	return types.MonthlyCount{Keyword: kw, Category: cat, Year: year, Month: month, Count: count}
}

func TestWordcloudTable(t *testing.T) {
	counts := []types.MonthlyCount{
		monthly("금리", types.CategoryTotal, 2025, 1, 10),
		monthly("금리", types.CategoryEconomy, 2025, 2, 15),
		monthly("물가", types.CategoryTotal, 2025, 1, 20),
		monthly("환율", types.CategoryTotal, 2025, 1, 5),
	}

	table := WordcloudTable(counts, 2)
	want := []types.KeywordCount{
		{Keyword: "금리", Count: 25},
		{Keyword: "물가", Count: 20},
	}
	if !reflect.DeepEqual(table, want) {
		t.Errorf("WordcloudTable = %v, want %v", table, want)
	}
}

func TestTopTimeseriesSumsAcrossCategories(t *testing.T) {
	counts := []types.MonthlyCount{
		monthly("금리", types.CategoryTotal, 2025, 1, 10),
		monthly("금리", types.CategoryEconomy, 2025, 1, 7),
		monthly("금리", types.CategoryTotal, 2025, 2, 4),
		monthly("군소", types.CategoryTotal, 2025, 1, 1),
	}

	series := TopTimeseries(counts, 1)
	want := []types.TimeseriesPoint{
		{Year: 2025, Month: 1, Keyword: "금리", Count: 17},
		{Year: 2025, Month: 2, Keyword: "금리", Count: 4},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("TopTimeseries = %v, want %v", series, want)
	}
}

func TestTopTimeseriesOrdering(t *testing.T) {
	counts := []types.MonthlyCount{
		monthly("나", types.CategoryTotal, 2025, 2, 3),
		monthly("가", types.CategoryTotal, 2025, 1, 3),
		monthly("나", types.CategoryTotal, 2024, 12, 3),
		monthly("가", types.CategoryTotal, 2025, 2, 3),
	}

	series := TopTimeseries(counts, 10)
	want := []types.TimeseriesPoint{
		{Year: 2025, Month: 1, Keyword: "가", Count: 3},
		{Year: 2025, Month: 2, Keyword: "가", Count: 3},
		{Year: 2024, Month: 12, Keyword: "나", Count: 3},
		{Year: 2025, Month: 2, Keyword: "나", Count: 3},
	}
	if !reflect.DeepEqual(series, want) {
		t.Errorf("ordering = %v, want %v", series, want)
	}
}

func TestEconomyTopIgnoresTotalCategory(t *testing.T) {
	counts := []types.MonthlyCount{
		monthly("전체만", types.CategoryTotal, 2025, 1, 100),
		monthly("환율", types.CategoryEconomy, 2025, 1, 8),
		monthly("수출", types.CategoryEconomy, 2025, 1, 12),
	}

	top := EconomyTop(counts, 10)
	want := []types.KeywordCount{
		{Keyword: "수출", Count: 12},
		{Keyword: "환율", Count: 8},
	}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("EconomyTop = %v, want %v", top, want)
	}
}

func TestEconomyTopEmpty(t *testing.T) {
	counts := []types.MonthlyCount{
		monthly("전체만", types.CategoryTotal, 2025, 1, 100),
	}
	if top := EconomyTop(counts, 10); len(top) != 0 {
		t.Errorf("expected empty result without economy rows, got %v", top)
	}
}
