package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type stubChannel struct {
	name       string
	recipients []string
	failFor    map[string]error
	delivered  []string
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Recipients() []string { return s.recipients }

func (s *stubChannel) Deliver(ctx context.Context, recipient string, msg Message) error {
	s.delivered = append(s.delivered, recipient)
	return s.failFor[recipient]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatch_FanOut(t *testing.T) {
	a := &stubChannel{name: "a", recipients: []string{"a1", "a2"}}
	b := &stubChannel{name: "b", recipients: []string{"b1", "b2", "b3"}}

	r := NewRouter(discardLogger())
	outcomes := r.Dispatch(context.Background(), Message{Body: "hi"}, []Channel{a, b})

	if len(outcomes) != 5 {
		t.Fatalf("outcomes = %d, want 5 (every channel x recipient pair)", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Success {
			t.Errorf("%s/%s: unexpected failure: %v", o.Channel, o.Recipient, o.Err)
		}
	}
}

func TestDispatch_NoShortCircuit(t *testing.T) {
	boom := errors.New("boom")
	a := &stubChannel{
		name:       "a",
		recipients: []string{"a1", "a2"},
		failFor:    map[string]error{"a1": boom},
	}
	b := &stubChannel{name: "b", recipients: []string{"b1"}}

	r := NewRouter(discardLogger())
	outcomes := r.Dispatch(context.Background(), Message{Body: "hi"}, []Channel{a, b})

	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3: a failure must not stop later deliveries", len(outcomes))
	}
	if outcomes[0].Success || !errors.Is(outcomes[0].Err, boom) {
		t.Errorf("first outcome = %+v, want captured failure", outcomes[0])
	}
	if !outcomes[1].Success || !outcomes[2].Success {
		t.Error("remaining deliveries should have succeeded")
	}
	if len(a.delivered) != 2 || len(b.delivered) != 1 {
		t.Errorf("delivered a=%v b=%v, want all recipients attempted", a.delivered, b.delivered)
	}
}

func TestDispatch_EmptyChannelList(t *testing.T) {
	r := NewRouter(discardLogger())
	outcomes := r.Dispatch(context.Background(), Message{Body: "hi"}, nil)
	if len(outcomes) != 0 {
		t.Errorf("outcomes = %d, want 0", len(outcomes))
	}
}

func TestDispatch_ChannelWithZeroRecipients(t *testing.T) {
	a := &stubChannel{name: "a"}
	b := &stubChannel{name: "b", recipients: []string{"b1"}}

	r := NewRouter(discardLogger())
	outcomes := r.Dispatch(context.Background(), Message{Body: "hi"}, []Channel{a, b})
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(outcomes))
	}
	if outcomes[0].Channel != "b" {
		t.Errorf("channel = %q, want %q", outcomes[0].Channel, "b")
	}
}
