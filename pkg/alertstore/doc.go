// Package alertstore provides alerts.Store implementations for shared backends.
//
// Every store keeps insertion order within a scope and ignores Append of an
// alert id the scope already holds. Backend failures are joined with
// alerts.ErrStoreUnavailable; undecodable payloads with alerts.ErrInvalidPayload.
//
// Available stores:
//
//   - Cache: bounded in-process LRU of scopes (pkg/cache)
//   - Redis: one JSON value per scope, optimistic WATCH/MULTI append
//   - Postgres: one row per alert in flash_alerts, schema shipped as goose migrations
//   - Mongo: one document per scope with a guarded $push append
//   - NATS: JetStream KV bucket with a revision based CAS append
//   - Session: server-side session data (pkg/session), scope is the session token
//
// Example:
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//	    return err
//	}
//	store := alertstore.NewRedis(client, alertstore.RedisConfig{TTL: time.Hour})
//
//	_ = alerts.Push(ctx, store, userID, alerts.NewBuilder(alerts.TypeInfo, "Export ready").Build())
package alertstore
