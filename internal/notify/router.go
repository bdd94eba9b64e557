package notify

import (
	"context"
	"log/slog"
)

// Channel is one notification transport with its own credentials and
// recipient list.
type Channel interface {
	Name() string

	// Recipients returns the channel's addressing targets in display
	// form. It never includes credentials.
	Recipients() []string

	// Deliver sends the message to a single recipient. Transports are
	// expected to bound themselves with their own timeouts; the router
	// imposes no global deadline.
	Deliver(ctx context.Context, recipient string, msg Message) error
}

// Outcome records one delivery attempt.
type Outcome struct {
	Channel   string
	Recipient string
	Success   bool
	Err       error
}

// Router dispatches a message to every (channel, recipient) pair.
type Router struct {
	logger *slog.Logger
}

// NewRouter creates a Router reporting to the given log handle.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{logger: logger}
}

// Dispatch attempts every configured channel exactly once and, within
// a channel, every recipient exactly once. Attempts are sequential and
// independent: a failure is recorded and the loop moves on. A missed
// alert is the worst outcome, so redundant delivery across channels is
// intentional.
func (r *Router) Dispatch(ctx context.Context, msg Message, channels []Channel) []Outcome {
	var outcomes []Outcome

	for _, ch := range channels {
		for _, recipient := range ch.Recipients() {
			log := r.logger.With("channel", ch.Name(), "recipient", recipient)

			err := ch.Deliver(ctx, recipient, msg)
			if err != nil {
				log.Error("delivery failed", "error", err)
			} else {
				log.Info("delivered")
			}

			outcomes = append(outcomes, Outcome{
				Channel:   ch.Name(),
				Recipient: recipient,
				Success:   err == nil,
				Err:       err,
			})
		}
	}

	return outcomes
}
