package main

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dmitrymomot/alertkit/pkg/alertrender"
	"github.com/dmitrymomot/alertkit/pkg/config"
	"github.com/dmitrymomot/alertkit/pkg/email"
	"github.com/dmitrymomot/alertkit/pkg/relay"
)

// openRelays builds the optional relays listed in ALERTS_RELAYS.
func (b *backends) openRelays(renderer *alertrender.Renderer) ([]relay.Relay, error) {
	out := make([]relay.Relay, 0, len(b.cfg.Relays))
	for _, name := range b.cfg.Relays {
		switch strings.TrimSpace(name) {
		case "":
			continue

		case relayNATS:
			nc, err := b.natsConn()
			if err != nil {
				return nil, err
			}
			out = append(out, relay.NewNATS(nc, b.cfg.NATSSubjectPrefix))

		case relayEmail:
			sender, err := b.emailSender()
			if err != nil {
				return nil, err
			}
			var r relay.Relay = relay.NewEmail(sender, renderer, addressScope,
				relay.WithSubject(b.cfg.EmailSubject),
				relay.WithEmailLogger(b.log),
			)
			if b.cfg.EmailMinPriority > 0 {
				r = relay.NewFilter(r, relay.MinPriority(b.cfg.EmailMinPriority))
			}
			out = append(out, r)

		default:
			return nil, errors.Join(errUnknownRelay, errors.New(name))
		}
	}
	return out, nil
}

// emailSender uses Postmark when a server token is configured and writes
// messages to disk otherwise.
func (b *backends) emailSender() (email.EmailSender, error) {
	var cfg email.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return email.NewFromConfig(cfg)
}

// addressScope treats scopes that are email addresses as recipients, which
// fits the header scope mode where clients identify themselves by address.
func addressScope(_ context.Context, scope string) (string, error) {
	addr, err := mail.ParseAddress(scope)
	if err != nil {
		return "", relay.ErrNoRecipient
	}
	return addr.Address, nil
}
