package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioAPIBase = "https://api.twilio.com"

// TwilioChannel sends the alert as SMS through the Twilio REST API,
// one message per destination number.
type TwilioChannel struct {
	accountSID string
	authToken  string
	from       string
	to         []string
	client     *http.Client
	baseURL    string
}

// NewTwilioChannel creates the channel for the given account.
func NewTwilioChannel(accountSID, authToken, from string, to []string) *TwilioChannel {
	return &TwilioChannel{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    twilioAPIBase,
	}
}

func (c *TwilioChannel) Name() string { return "twilio" }

func (c *TwilioChannel) Recipients() []string { return c.to }

// Deliver POSTs one Messages.json request with basic auth.
func (c *TwilioChannel) Deliver(ctx context.Context, recipient string, msg Message) error {
	form := url.Values{}
	form.Set("To", recipient)
	form.Set("From", c.from)
	form.Set("Body", msg.text())

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building twilio request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var parsed struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&parsed)
		return fmt.Errorf("twilio error: %d %s", resp.StatusCode, parsed.Message)
	}

	return nil
}
