// Package extract pulls the text of a CSS-selected element out of
// fetched markup. A selector that matches nothing is an expected
// condition, reported as a NotFound result rather than an error.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Result is the outcome of an extraction: either the trimmed text of
// the first matching element, or not-found. The zero value is NotFound.
type Result struct {
	found bool
	text  string
}

// Found wraps element text in a Result.
func Found(text string) Result {
	return Result{found: true, text: text}
}

// NotFound is the result for a selector that matched no element.
func NotFound() Result {
	return Result{}
}

// Found reports whether the selector matched an element.
func (r Result) Found() bool { return r.found }

// Text returns the extracted text. It is only meaningful when Found
// reports true; for a not-found result it is the empty string.
func (r Result) Text() string { return r.text }

// FirstText parses html and returns the text of the first element
// matching selector, in document order, with surrounding whitespace
// trimmed. Internal whitespace is left untouched. A selector that
// matches nothing yields NotFound; only an invalid selector is an
// error.
func FirstText(html, selector string) (Result, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return NotFound(), fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return NotFound(), fmt.Errorf("parsing page: %w", err)
	}

	sel := doc.FindMatcher(matcher)
	if sel.Length() == 0 {
		return NotFound(), nil
	}

	return Found(strings.TrimSpace(sel.First().Text())), nil
}
