// Package redis connects the go-redis client used by the redis alert store
// and the readiness probe.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	r.Get("/health/ready", httpserver.HealthCheckHandler(log, redis.Healthcheck(client)))
package redis
