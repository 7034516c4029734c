package browser

import (
	"context"
	"strings"
)

// Page is the narrow browser capability the rest of the system depends on.
// Selector correctness is the page implementation's problem; callers only see
// already-extracted text. All methods are suspension points.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until sel is visible or the context expires.
	WaitVisible(ctx context.Context, sel string) error
	// Text returns the text of the first element matching sel, or "" when
	// nothing matches. Absence is not an error.
	Text(ctx context.Context, sel string) (string, error)
	// TextAll returns the text of every element matching sel.
	TextAll(ctx context.Context, sel string) ([]string, error)
	Click(ctx context.Context, sel string) error
	Type(ctx context.Context, sel, text string) error
	// Evaluate runs js in the page and decodes the result into out.
	Evaluate(ctx context.Context, js string, out any) error
}

// FirstText tries selectors in order and returns the first non-empty text.
// Pages render differently across experiments, so every lookup carries a
// fallback list.
func FirstText(ctx context.Context, p Page, selectors []string) string {
	for _, sel := range selectors {
		text, err := p.Text(ctx, sel)
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			return t
		}
	}
	return ""
}

// FirstClick tries selectors in order until one click lands.
func FirstClick(ctx context.Context, p Page, selectors []string) bool {
	for _, sel := range selectors {
		if err := p.Click(ctx, sel); err == nil {
			return true
		}
	}
	return false
}
