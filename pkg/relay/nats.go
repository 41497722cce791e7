package relay

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/requestid"
)

// Publisher is the subset of *nats.Conn used by the NATS relay.
type Publisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATS publishes an Event as JSON to "<prefix>.<scope>". The request id of
// ctx, when present, travels in the X-Request-ID header.
// Other instances subscribe to the prefix to fan alerts out across a cluster.
type NATS struct {
	pub    Publisher
	prefix string
}

// NewNATS creates a NATS relay. An empty prefix defaults to "alerts".
func NewNATS(pub Publisher, prefix string) *NATS {
	if prefix == "" {
		prefix = "alerts"
	}
	return &NATS{pub: pub, prefix: strings.TrimSuffix(prefix, ".")}
}

// Subject returns the subject alerts of scope are published to.
func (n *NATS) Subject(scope string) string {
	return n.prefix + "." + subjectToken(scope)
}

// subjectToken replaces characters that have a meaning in NATS subjects.
func subjectToken(scope string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, scope)
}

func (n *NATS) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}
	data, err := json.Marshal(Event{Scope: scope, Alerts: list})
	if err != nil {
		return errors.Join(alerts.ErrInvalidPayload, err)
	}
	msg := nats.NewMsg(n.Subject(scope))
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		msg.Header.Set(requestid.Header, id)
	}
	if err := n.pub.PublishMsg(msg); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// DecodeEvent decodes a message published by the NATS relay.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, errors.Join(alerts.ErrInvalidPayload, err)
	}
	if ev.Alerts == nil {
		ev.Alerts = []alerts.Alert{}
	}
	return ev, nil
}
