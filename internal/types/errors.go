package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrMissingCredentials = errors.New("BIGKINDS_ID or BIGKINDS_PW is not set")
	ErrMissingAPIKey      = errors.New("OPENAI_API_KEY is not set")
	ErrLoginFailed        = errors.New("login modal still visible after submit")
)

// NavigationError wraps fatal setup failures: page navigation and category
// selection. These abort the whole category run.
type NavigationError struct {
	URL  string
	Step string
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation error at %s (%s): %v", e.Step, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ExtractError wraps per-unit extraction failures. These are logged and
// skipped at the smallest meaningful unit (item, day-block, or week) and
// never abort a run on their own.
type ExtractError struct {
	Anchor   string
	Selector string
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for anchor %s (selector=%q): %v", e.Anchor, e.Selector, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// StorageError wraps errors from persistence backends.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DataError wraps validation failures in aggregation inputs: a missing
// required column or an unrecognized category. Correct totals depend on
// these, so they are raised immediately.
type DataError struct {
	Source string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error in %s: %v", e.Source, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
