package crawler

import (
	"fmt"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// WeekendNewsURL is the BIGKinds weekly issue news listing endpoint.
const WeekendNewsURL = "https://www.bigkinds.or.kr/v2/news/weekendNews.do"

// Selectors for the weekend-news page DOM.
const (
	selCategory    = "#issueCategory"
	selSearchInput = "#weekend-search-date"
	selSearchBtn   = "button.search-btn"
	selContainer   = "div#weekend-news-result > ul.weekendNews-lst"
	selDayBlock    = "div.item"
	selItemRow     = "div.cont > ul > li"
	selTopicRow    = "a.topic-row"
	selTopicTitle  = "span"
	selTopicCount  = "i.num"

	attrDayDate = "data-date"
	dateLayout  = "2006-01-02"
)

// categorySelectValue maps a category to the value attribute of its
// option in the #issueCategory select control.
func categorySelectValue(cat types.Category) (string, error) {
	switch cat {
	case types.CategoryTotal:
		return "전체", nil
	case types.CategoryEconomy:
		return "002000000", nil
	default:
		return "", fmt.Errorf("unknown category: %q", cat)
	}
}
