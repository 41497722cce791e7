package alertstore_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alertstore"
	"github.com/dmitrymomot/alertkit/pkg/mongo"
	"github.com/dmitrymomot/alertkit/pkg/pg"
	"github.com/dmitrymomot/alertkit/pkg/redis"
)

// Backend tests run only when the matching ALERTS_TEST_* variable points at a live server.

func requireEnv(t *testing.T, name string) string {
	t.Helper()
	v := os.Getenv(name)
	if v == "" {
		t.Skipf("%s is not set", name)
	}
	return v
}

func TestRedis_Contract(t *testing.T) {
	url := requireEnv(t, "ALERTS_TEST_REDIS_URL")
	ctx := context.Background()

	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := alertstore.NewRedis(client, alertstore.RedisConfig{KeyPrefix: "alerts-test:", TTL: time.Minute})
	testStoreContract(t, store, uniqueScope("redis"))
}

func TestPostgres_Contract(t *testing.T) {
	url := requireEnv(t, "ALERTS_TEST_PG_URL")
	ctx := context.Background()

	cfg := pg.Config{
		ConnectionString: url,
		MaxOpenConns:     10,
		MaxIdleConns:     1,
		RetryAttempts:    1,
		RetryInterval:    time.Second,
		MigrationsTable:  "alerts_schema_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, alertstore.MigratePostgres(ctx, pool, cfg, slog.Default()))

	testStoreContract(t, alertstore.NewPostgres(pool), uniqueScope("pg"))
}

func TestMongo_Contract(t *testing.T) {
	url := requireEnv(t, "ALERTS_TEST_MONGO_URL")
	ctx := context.Background()

	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
	}, "alertkit_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

	store := alertstore.NewMongo(db, alertstore.MongoConfig{Collection: "flash_alerts_test", TTL: time.Hour})
	require.NoError(t, store.EnsureIndexes(ctx))
	testStoreContract(t, store, uniqueScope("mongo"))
}
