// Package httpserver runs the alert service's http.Server with graceful
// shutdown tied to a context, plus liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r.Get("/health/ready", httpserver.HealthCheckHandler(log, redis.Healthcheck(client)))
//	return srv.Run(ctx, r)
package httpserver
