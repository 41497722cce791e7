// Command alertd serves flash alerts over HTTP: a JSON API, rendered markup
// and push streams, backed by the store selected with ALERTS_STORE.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/alertkit/pkg/alertrender"
	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/alertshttp"
	"github.com/dmitrymomot/alertkit/pkg/config"
	"github.com/dmitrymomot/alertkit/pkg/cookie"
	"github.com/dmitrymomot/alertkit/pkg/environment"
	"github.com/dmitrymomot/alertkit/pkg/httpserver"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/relay"
	"github.com/dmitrymomot/alertkit/pkg/requestid"
	"github.com/dmitrymomot/alertkit/pkg/session"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log, err := logger.NewFromConfig(
		logger.Config{Env: cfg.Env, Service: cfg.ServiceName, Level: cfg.LogLevel, Format: cfg.LogFormat},
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)
	if err != nil {
		slog.Error("invalid logger configuration", logger.Error(err))
		os.Exit(1)
	}
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "alertd stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var alertsCfg alerts.Config
	var renderCfg alertrender.Config
	var httpCfg alertshttp.Config
	var serverCfg httpserver.Config
	var cookieCfg cookie.Config
	var sessionCfg session.Config
	if err := errors.Join(
		config.Load(&alertsCfg),
		config.Load(&renderCfg),
		config.Load(&httpCfg),
		config.Load(&serverCfg),
		config.Load(&cookieCfg),
		config.Load(&sessionCfg),
	); err != nil {
		return err
	}

	renderer, err := alertrender.NewFromConfig(renderCfg, log)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}
	sessionStore := session.NewMemoryStore(sessionCfg.CleanupInterval)
	defer sessionStore.Close()
	sessions, err := session.NewFromConfig(sessionCfg,
		session.WithStore(sessionStore),
		session.WithCookieManager(cookies),
		session.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer sessions.Close()

	b := &backends{cfg: cfg, log: log}
	defer b.close()

	scope, err := scopeFunc(cfg.Scope, httpCfg.ScopeHeader)
	if err != nil {
		return err
	}

	persister, checks, err := b.openPersister(ctx, scope, cookies, sessionStore)
	if err != nil {
		return err
	}

	push := relay.NewBroadcast(httpCfg.StreamBufferSize,
		relay.WithMaxBroadcasters(httpCfg.MaxStreamScopes),
		relay.WithBroadcastLogger(log),
	)
	b.closers.add("broadcast", push.Close)

	relays, err := b.openRelays(renderer)
	if err != nil {
		return err
	}
	relays = append([]relay.Relay{push}, relays...)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(environment.Parse(cfg.Env)))
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks...))

	r.Group(func(r chi.Router) {
		r.Use(sessions.EnsureSession)
		r.Use(alertshttp.Middleware(persister,
			alertshttp.WithLogger(log),
			alertshttp.WithRelay(relay.NewMulti(relays, relay.WithMultiLogger(log))),
			alertshttp.WithManagerOptions(
				alerts.WithDefaults(alertsCfg.Defaults()),
				alerts.WithDefaultTTL(alertsCfg.DefaultTTL),
				alerts.WithRenderer(renderer),
			),
		))
		r.Get("/", pageHandler(renderer))
		r.Mount("/alerts", alertshttp.Router(alertshttp.RouterConfig{
			Renderer:    renderer,
			Broadcast:   push,
			Scope:       scope,
			CheckOrigin: httpCfg.CheckOrigin(),
			Logger:      log,
		}))
	})

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func scopeFunc(kind, header string) (alertshttp.ScopeFunc, error) {
	switch kind {
	case "session", "":
		return alertshttp.SessionScope, nil
	case "user":
		return alertshttp.FirstScope(alertshttp.UserScope, alertshttp.SessionScope), nil
	case "header":
		return alertshttp.HeaderScope(header), nil
	}
	return nil, errors.Join(errUnknownScope, errors.New(kind))
}
