package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramChannel sends the alert through the Telegram bot API, one
// sendMessage call per chat id.
type TelegramChannel struct {
	token   string
	chatIDs []string
	client  *http.Client
	baseURL string
}

// NewTelegramChannel creates the channel for the given bot token and
// chat ids.
func NewTelegramChannel(token string, chatIDs []string) *TelegramChannel {
	return &TelegramChannel{
		token:   token,
		chatIDs: chatIDs,
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: telegramAPIBase,
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Recipients() []string { return c.chatIDs }

// Deliver GETs sendMessage with chat_id and text query parameters. The
// body, reference URL included, is query-encoded for transport.
func (c *TelegramChannel) Deliver(ctx context.Context, recipient string, msg Message) error {
	q := url.Values{}
	q.Set("chat_id", recipient)
	q.Set("text", msg.text())

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?%s", c.baseURL, c.token, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling telegram: %w", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !parsed.OK {
		return fmt.Errorf("telegram error: %d %s", resp.StatusCode, parsed.Description)
	}

	return nil
}
