package crawler

import "time"

// Element is a handle to a live DOM node. Handles can go stale whenever
// the page re-renders, so callers re-acquire them through Page instead of
// retaining them across reads.
type Element interface {
	// Attribute returns the named attribute, or "" when it is absent.
	Attribute(name string) (string, error)

	// Text returns the node's trimmed visible text.
	Text() (string, error)

	// Element finds the first descendant matching the CSS selector.
	Element(selector string) (Element, error)

	// Elements finds all descendants matching the CSS selector.
	Elements(selector string) ([]Element, error)

	// Input replaces the node's current content with text.
	Input(text string) error

	// Click clicks the node.
	Click() error
}

// Page is the automated-browser surface the crawler consumes. The session
// lifecycle (launch, login, close) belongs to the caller; the crawler only
// drives navigation and element reads on an already-authenticated page.
type Page interface {
	// Navigate loads the given URL.
	Navigate(url string) error

	// Element finds the first element matching the CSS selector.
	Element(selector string) (Element, error)

	// Elements finds all elements matching the CSS selector. Unlike
	// Element it does not wait: an empty result means none are present
	// right now.
	Elements(selector string) ([]Element, error)

	// SelectOption selects the <select> option with the given value
	// attribute.
	SelectOption(selector, value string) error

	// WaitElement waits up to timeout for the element to exist and become
	// visible, then returns it.
	WaitElement(selector string, timeout time.Duration) (Element, error)
}
