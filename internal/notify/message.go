// Package notify fans a single change alert out to every configured
// channel. Deliveries are best-effort and independent: one failing
// recipient never blocks the rest.
package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pagewatch/pagewatch/internal/detect"
)

// DefaultTemplate renders the alert body sent when the watched text
// changed. Config may override it; Sprig functions are available.
const DefaultTemplate = `The webpage has changed! Expected: {{.Expected}} | Found: {{.Observed}}`

// Message is the alert delivered to every channel. It is built once
// per run and shared read-only across deliveries.
type Message struct {
	Body string

	// RefURL is the checked page, appended to the body by adapters
	// whose transport benefits from a clickable reference. Optional.
	RefURL string
}

// BuildMessage renders the body template against the verdict.
func BuildMessage(tmplStr string, v detect.Verdict, refURL string) (Message, error) {
	if tmplStr == "" {
		tmplStr = DefaultTemplate
	}

	t, err := template.New("alert").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return Message{}, fmt.Errorf("parsing message template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return Message{}, fmt.Errorf("rendering message template: %w", err)
	}

	return Message{Body: buf.String(), RefURL: refURL}, nil
}

// text returns the body with the reference URL appended when present.
func (m Message) text() string {
	if m.RefURL == "" {
		return m.Body
	}
	return m.Body + "\n" + m.RefURL
}
