package alertstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/logger"
)

// NATSConfig configures the JetStream KV store.
type NATSConfig struct {
	Bucket       string        `env:"ALERTS_NATS_BUCKET" envDefault:"flash_alerts"`
	TTL          time.Duration `env:"ALERTS_NATS_TTL" envDefault:"24h"`
	CreateBucket bool          `env:"ALERTS_NATS_CREATE_BUCKET" envDefault:"true"`
	MaxRetries   int           `env:"ALERTS_NATS_MAX_RETRIES" envDefault:"5"`
}

// KeyValue is the subset of nats.KeyValue used by the NATS store.
type KeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Update(key string, value []byte, last uint64) (uint64, error)
}

// NATS keeps one JSON list per scope in a JetStream KV bucket.
// Append is a compare-and-swap loop on the entry revision.
type NATS struct {
	kv         KeyValue
	maxRetries int
	logger     *slog.Logger
}

// NATSOption configures a NATS store.
type NATSOption func(*NATS)

// WithNATSLogger sets the logger for the NATS store.
func WithNATSLogger(l *slog.Logger) NATSOption {
	return func(n *NATS) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithNATSMaxRetries sets how many CAS attempts Append makes before returning ErrConflict.
func WithNATSMaxRetries(n int) NATSOption {
	return func(s *NATS) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewNATS creates a store on top of an open KV bucket.
func NewNATS(kv KeyValue, opts ...NATSOption) *NATS {
	n := &NATS{
		kv:         kv,
		maxRetries: 5,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OpenNATSBucket opens the configured bucket, creating it when allowed.
func OpenNATSBucket(js nats.JetStreamContext, cfg NATSConfig) (nats.KeyValue, error) {
	kv, err := js.KeyValue(cfg.Bucket)
	if err == nil {
		return kv, nil
	}
	if !cfg.CreateBucket {
		return nil, fmt.Errorf("open alerts bucket %q: %w", cfg.Bucket, err)
	}
	kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket:  cfg.Bucket,
		TTL:     cfg.TTL,
		History: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create alerts bucket %q: %w", cfg.Bucket, err)
	}
	return kv, nil
}

// natsKey maps a scope onto the KV key alphabet.
func natsKey(scope string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '=', r == '.':
			return r
		}
		return '_'
	}, scope)
}

func (n *NATS) get(key string) ([]alerts.Alert, uint64, error) {
	entry, err := n.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return []alerts.Alert{}, 0, nil
	}
	if err != nil {
		return nil, 0, unavailable(err)
	}
	list, err := alerts.Unmarshal(entry.Value())
	if err != nil {
		return nil, 0, err
	}
	return list, entry.Revision(), nil
}

func (n *NATS) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	list, _, err := n.get(natsKey(scope))
	return list, err
}

func (n *NATS) Append(ctx context.Context, scope string, a alerts.Alert) error {
	key := natsKey(scope)
	for range n.maxRetries {
		if err := ctx.Err(); err != nil {
			return err
		}
		list, rev, err := n.get(key)
		if err != nil {
			return err
		}
		list, added := alerts.AppendUnique(list, a)
		if !added {
			return nil
		}
		payload, err := alerts.Marshal(list)
		if err != nil {
			return err
		}
		_, err = n.kv.Update(key, payload, rev)
		if err == nil {
			return nil
		}
		if !isRevisionConflict(err) {
			return unavailable(err)
		}
		n.logger.LogAttrs(ctx, slog.LevelDebug, "Alert append lost a race, retrying",
			logger.Backend("nats"),
			logger.Scope(scope),
		)
	}
	return ErrConflict
}

func isRevisionConflict(err error) bool {
	return errors.Is(err, nats.ErrKeyExists) || strings.Contains(strings.ToLower(err.Error()), "wrong last sequence")
}

func (n *NATS) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	payload, err := alerts.Marshal(alerts.Dedupe(list))
	if err != nil {
		return err
	}
	_, err = n.kv.Put(natsKey(scope), payload)
	return unavailable(err)
}

// Clear stores an empty list instead of deleting the key, so the next Append
// can still compare against a revision. The bucket TTL removes idle keys.
func (n *NATS) Clear(ctx context.Context, scope string) error {
	return n.Replace(ctx, scope, nil)
}
