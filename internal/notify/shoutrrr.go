package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// ShoutrrrChannel delivers through any service URL the Shoutrrr router
// understands (slack://, discord://, smtp://, ...). The URL embeds the
// credentials, so only its scheme is ever used as an identity.
type ShoutrrrChannel struct {
	serviceURL string
	params     map[string]string
}

// NewShoutrrrChannel creates the channel for one service URL.
func NewShoutrrrChannel(serviceURL string, params map[string]string) *ShoutrrrChannel {
	return &ShoutrrrChannel{serviceURL: serviceURL, params: params}
}

func (c *ShoutrrrChannel) Name() string { return "shoutrrr" }

// Recipients identifies the target by scheme only; the URL itself
// carries secrets and must not surface in logs or outcomes.
func (c *ShoutrrrChannel) Recipients() []string {
	scheme, _, ok := strings.Cut(c.serviceURL, "://")
	if !ok || scheme == "" {
		scheme = "unknown"
	}
	return []string{scheme}
}

func (c *ShoutrrrChannel) Deliver(ctx context.Context, recipient string, msg Message) error {
	sender, err := shoutrrr.CreateSender(c.serviceURL)
	if err != nil {
		return fmt.Errorf("creating %s sender: %w", recipient, err)
	}

	params := types.Params(c.params)
	for _, e := range sender.Send(msg.text(), &params) {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", recipient, e)
		}
	}

	return nil
}
