package notify

import "strings"

// ParseList splits a comma-separated recipient list, trimming
// whitespace around each entry. Empty entries (including those left by
// trailing or doubled commas) are skipped; an empty input is zero
// recipients, not an error.
func ParseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// GatewayRecipient addresses an SMS sent through a carrier's
// email-to-SMS gateway.
type GatewayRecipient struct {
	Number  string
	Gateway string
}

// Address returns the deliverable mailbox, e.g. "15551234567@vtext.com".
func (g GatewayRecipient) Address() string {
	return g.Number + "@" + g.Gateway
}

// ParseGatewayRecipients parses a comma-separated list of
// "number:gatewayHost" pairs. Malformed entries are returned separately
// so the caller can warn about them; they never abort the run.
func ParseGatewayRecipients(raw string) (valid []GatewayRecipient, malformed []string) {
	for _, entry := range ParseList(raw) {
		number, gateway, ok := strings.Cut(entry, ":")
		number = strings.TrimSpace(number)
		gateway = strings.TrimSpace(gateway)
		if !ok || number == "" || gateway == "" {
			malformed = append(malformed, entry)
			continue
		}
		valid = append(valid, GatewayRecipient{Number: number, Gateway: gateway})
	}
	return valid, malformed
}
