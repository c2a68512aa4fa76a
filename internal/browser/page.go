package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/crawler"
)

// RodPage adapts a rod page to the crawler.Page interface.
type RodPage struct {
	page       *rod.Page
	navTimeout time.Duration
	logger     *slog.Logger
}

var _ crawler.Page = (*RodPage)(nil)

// Navigate loads the URL and waits for the page to settle.
func (p *RodPage) Navigate(url string) error {
	if err := p.page.Timeout(p.navTimeout).Navigate(url); err != nil {
		return err
	}
	if err := p.page.Timeout(p.navTimeout).WaitStable(300 * time.Millisecond); err != nil {
		p.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}
	return nil
}

// Element finds the first element matching the CSS selector, waiting up
// to the navigation timeout for it to appear.
func (p *RodPage) Element(selector string) (crawler.Element, error) {
	el, err := p.page.Timeout(p.navTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return &rodElement{el: el}, nil
}

// Elements returns all current matches without waiting.
func (p *RodPage) Elements(selector string) ([]crawler.Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

// SelectOption selects the option with the given value attribute.
func (p *RodPage) SelectOption(selector, value string) error {
	el, err := p.page.Timeout(p.navTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return el.Select([]string{fmt.Sprintf(`[value=%q]`, value)}, true, rod.SelectorTypeCSSSector)
}

// WaitElement waits up to timeout for the element to exist and become
// visible.
func (p *RodPage) WaitElement(selector string, timeout time.Duration) (crawler.Element, error) {
	el, err := p.page.Timeout(timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("element not found: %s: %w", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("element not visible: %s: %w", selector, err)
	}
	return &rodElement{el: el}, nil
}

// rodElement adapts a rod element to crawler.Element.
type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Element(selector string) (crawler.Element, error) {
	el, err := e.el.Element(selector)
	if err != nil {
		return nil, err
	}
	return &rodElement{el: el}, nil
}

func (e *rodElement) Elements(selector string) ([]crawler.Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

// Input replaces the element's current content with text.
func (e *rodElement) Input(text string) error {
	if err := e.el.SelectAllText(); err != nil {
		return err
	}
	return e.el.Input(text)
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func wrapElements(els rod.Elements) []crawler.Element {
	out := make([]crawler.Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out
}
