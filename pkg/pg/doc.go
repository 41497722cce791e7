// Package pg connects to PostgreSQL with pgx/v5 and applies goose migrations.
//
// It backs the postgres alert store: Connect opens a pool with retries,
// MigrateFS applies the embedded alert schema and Healthcheck plugs the pool
// into the readiness endpoint.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.MigrateFS(ctx, pool, migrations, "migrations", cfg, log); err != nil {
//	    return err
//	}
package pg
