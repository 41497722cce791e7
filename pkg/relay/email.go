package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/email"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// RecipientFunc resolves the email address of a scope.
// Returning ErrNoRecipient skips the scope silently.
type RecipientFunc func(ctx context.Context, scope string) (string, error)

// Email renders alerts into one HTML message and sends it.
type Email struct {
	sender    email.EmailSender
	renderer  alerts.Renderer
	recipient RecipientFunc
	subject   string
	tag       string
	logger    *slog.Logger
}

// EmailOption configures an Email relay.
type EmailOption func(*Email)

// WithSubject sets the message subject. Default: "You have new notifications".
func WithSubject(subject string) EmailOption {
	return func(e *Email) {
		if subject != "" {
			e.subject = subject
		}
	}
}

// WithTag sets the provider tag used for message stream statistics.
func WithTag(tag string) EmailOption {
	return func(e *Email) {
		e.tag = tag
	}
}

// WithEmailLogger sets the logger for the Email relay.
func WithEmailLogger(l *slog.Logger) EmailOption {
	return func(e *Email) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEmail creates an email relay.
func NewEmail(sender email.EmailSender, renderer alerts.Renderer, recipient RecipientFunc, opts ...EmailOption) *Email {
	e := &Email{
		sender:    sender,
		renderer:  renderer,
		recipient: recipient,
		subject:   "You have new notifications",
		tag:       "flash-alerts",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Email) Deliver(ctx context.Context, scope string, list []alerts.Alert) error {
	if len(list) == 0 {
		return nil
	}

	to, err := e.recipient(ctx, scope)
	if errors.Is(err, ErrNoRecipient) || (err == nil && to == "") {
		e.logger.LogAttrs(ctx, slog.LevelDebug, "No email recipient for scope, skipping",
			logger.Scope(scope),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	var body strings.Builder
	for _, a := range list {
		if err := e.renderer.Render(ctx, &body, a); err != nil {
			return fmt.Errorf("render alert %s: %w", a.ID, err)
		}
	}

	if err := e.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  e.subject,
		BodyHTML: body.String(),
		Tag:      e.tag,
	}); err != nil {
		return err
	}

	e.logger.LogAttrs(ctx, slog.LevelDebug, "Alerts emailed",
		logger.Recipient(to),
		logger.Count(len(list)),
	)
	return nil
}
