package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/alertshttp"
	"github.com/dmitrymomot/alertkit/pkg/alertstore"
	"github.com/dmitrymomot/alertkit/pkg/config"
	"github.com/dmitrymomot/alertkit/pkg/cookie"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/mongo"
	"github.com/dmitrymomot/alertkit/pkg/pg"
	"github.com/dmitrymomot/alertkit/pkg/redis"
	"github.com/dmitrymomot/alertkit/pkg/session"
)

type healthCheck = func(context.Context) error

// backends owns the connections opened at startup.
type backends struct {
	cfg     appConfig
	log     *slog.Logger
	closers closerList
	nc      *nats.Conn
}

func (b *backends) close() {
	b.closers.closeAll(b.log)
}

// openPersister connects the configured backend and returns the persister
// used by the middleware plus readiness checks for it.
func (b *backends) openPersister(
	ctx context.Context,
	scope alertshttp.ScopeFunc,
	cookies *cookie.Manager,
	sessions session.Store,
) (alertshttp.Persister, []healthCheck, error) {
	if b.cfg.Store == storeCookie {
		p := alertshttp.NewCookiePersister(cookies, "", alertshttp.WithCookieLogger(b.log))
		p.ScopeFunc = scope
		return p, nil, nil
	}

	store, checks, err := b.openStore(ctx, sessions)
	if err != nil {
		return nil, nil, err
	}
	b.log.LogAttrs(ctx, slog.LevelInfo, "Alert store ready", logger.Backend(b.cfg.Store))
	return alertshttp.NewStorePersister(store, scope), checks, nil
}

func (b *backends) openStore(ctx context.Context, sessions session.Store) (alerts.Store, []healthCheck, error) {
	switch b.cfg.Store {
	case storeMemory:
		return alerts.NewMemoryStore(), nil, nil

	case storeCache:
		return alertstore.NewCache(b.cfg.CacheCapacity), nil, nil

	case storeSession:
		return alertstore.NewSession(sessions), nil, nil

	case storeRedis:
		var redisCfg redis.Config
		var storeCfg alertstore.RedisConfig
		if err := errors.Join(config.Load(&redisCfg), config.Load(&storeCfg)); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		b.closers.add(storeRedis, client.Close)
		return alertstore.NewRedis(client, storeCfg, alertstore.WithRedisLogger(b.log)),
			[]healthCheck{redis.Healthcheck(client)}, nil

	case storePostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		b.closers.add(storePostgres, func() error { pool.Close(); return nil })
		if err := alertstore.MigratePostgres(ctx, pool, pgCfg, b.log); err != nil {
			return nil, nil, err
		}
		return alertstore.NewPostgres(pool), []healthCheck{pg.Healthcheck(pool)}, nil

	case storeMongo:
		var mongoCfg mongo.Config
		var storeCfg alertstore.MongoConfig
		if err := errors.Join(config.Load(&mongoCfg), config.Load(&storeCfg)); err != nil {
			return nil, nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg, b.cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		b.closers.add(storeMongo, func() error { return db.Client().Disconnect(context.Background()) })
		store := alertstore.NewMongo(db, storeCfg)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}
		return store, []healthCheck{mongo.Healthcheck(db.Client())}, nil

	case storeNATS:
		var storeCfg alertstore.NATSConfig
		if err := config.Load(&storeCfg); err != nil {
			return nil, nil, err
		}
		nc, err := b.natsConn()
		if err != nil {
			return nil, nil, err
		}
		js, err := nc.JetStream()
		if err != nil {
			return nil, nil, fmt.Errorf("jetstream: %w", err)
		}
		kv, err := alertstore.OpenNATSBucket(js, storeCfg)
		if err != nil {
			return nil, nil, err
		}
		return alertstore.NewNATS(kv,
				alertstore.WithNATSLogger(b.log),
				alertstore.WithNATSMaxRetries(storeCfg.MaxRetries),
			),
			[]healthCheck{natsHealthcheck(nc)}, nil
	}
	return nil, nil, errors.Join(errUnknownStore, errors.New(b.cfg.Store))
}

// natsConn shares one connection between the NATS store and relay.
func (b *backends) natsConn() (*nats.Conn, error) {
	if b.nc != nil {
		return b.nc, nil
	}
	nc, err := nats.Connect(b.cfg.NATSURL, nats.Name(b.cfg.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	b.closers.add("nats", func() error { nc.Close(); return nil })
	b.nc = nc
	return nc, nil
}

func natsHealthcheck(nc *nats.Conn) healthCheck {
	return func(context.Context) error {
		if !nc.IsConnected() {
			return nats.ErrConnectionClosed
		}
		return nil
	}
}
