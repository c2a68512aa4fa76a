package types

import "testing"

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"total", "economy"} {
		cat, err := ParseCategory(s)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", s, err)
		}
		if string(cat) != s {
			t.Errorf("ParseCategory(%q) = %q", s, cat)
		}
	}

	if _, err := ParseCategory("politics"); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := ParseCategory(""); err == nil {
		t.Error("expected error for empty category")
	}
}

func TestNewsItemWeightAndCountString(t *testing.T) {
	n := 7
	with := NewsItem{ArticleCount: &n}
	without := NewsItem{}

	if with.Weight() != 7 || with.CountString() != "7" {
		t.Errorf("with count: weight=%d countString=%q", with.Weight(), with.CountString())
	}
	if without.Weight() != 0 {
		t.Errorf("unset count must weigh 0, got %d", without.Weight())
	}
	if without.CountString() != "" {
		t.Errorf("unset count must render empty, got %q", without.CountString())
	}
}
