// Package keywords turns raw news titles into keyword sets: titles are
// stripped down to Hangul/Latin/digit runs, Hangul tokens are kept as-is
// and Latin tokens are case-normalized to uppercase (AI, ESG, CPI), then
// stopwords and single-rune tokens are dropped.
package keywords

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reNonWord  = regexp.MustCompile(`[^가-힣0-9A-Za-z\s]`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reHangul   = regexp.MustCompile(`[가-힣]+`)
	reLatin    = regexp.MustCompile(`[A-Za-z]{2,}`)
)

// Stopwords is a read-only stopword set, loaded once at startup and passed
// into the extractor rather than held as package state.
type Stopwords map[string]struct{}

// LoadStopwords reads a stopword file with one entry per line. Blank
// lines are ignored.
func LoadStopwords(path string) (Stopwords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopwords file: %w", err)
	}
	defer f.Close()

	set := make(Stopwords)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			set[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords file: %w", err)
	}
	return set, nil
}

// Contains reports whether the word is a stopword.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Extractor derives keyword sets from titles.
type Extractor struct {
	stopwords Stopwords
	minLen    int
}

// NewExtractor creates an extractor. minLen is the minimum token length
// in runes; shorter tokens carry no signal in headline text.
func NewExtractor(stopwords Stopwords, minLen int) *Extractor {
	if stopwords == nil {
		stopwords = make(Stopwords)
	}
	return &Extractor{stopwords: stopwords, minLen: minLen}
}

// Clean strips a title down to Hangul, Latin, digits, and single spaces.
func Clean(text string) string {
	text = reNonWord.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Extract returns the title's keyword set in order of first appearance:
// Hangul tokens followed by uppercased Latin tokens, deduplicated, with
// stopwords and short tokens removed. An empty or whitespace title yields
// nil.
func (e *Extractor) Extract(title string) []string {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	cleaned := Clean(title)

	tokens := reHangul.FindAllString(cleaned, -1)
	for _, t := range reLatin.FindAllString(cleaned, -1) {
		tokens = append(tokens, strings.ToUpper(t))
	}

	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}

		if e.stopwords.Contains(t) {
			continue
		}
		if utf8.RuneCountInString(t) < e.minLen {
			continue
		}
		out = append(out, t)
	}
	return out
}
