// Package detect decides whether the observed element text counts as a
// change against the expected literal.
package detect

import "github.com/pagewatch/pagewatch/internal/extract"

// NotFoundSentinel is the observed text reported when the selector
// matched nothing. It is reserved: no expected value ever equals it,
// so a vanished element always reads as a change.
const NotFoundSentinel = "text_not_found (selector matched nothing)"

// Verdict is the comparison result. Observed carries the sentinel when
// the element was missing.
type Verdict struct {
	Changed  bool
	Expected string
	Observed string
}

// Detect compares an extraction result to the expected text. Equality
// is exact and case-sensitive; the only normalization is the trimming
// the extractor already applied. A not-found result is always a
// change, even against an empty expected string.
func Detect(res extract.Result, expected string) Verdict {
	if !res.Found() {
		return Verdict{Changed: true, Expected: expected, Observed: NotFoundSentinel}
	}
	return Verdict{
		Changed:  res.Text() != expected,
		Expected: expected,
		Observed: res.Text(),
	}
}
