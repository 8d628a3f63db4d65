// Package app wires the local store, the sync client and the local API into
// one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"villahub/database"
	"villahub/internal/config"
	"villahub/internal/microservices/http-api/handler"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/http-api/service"
	"villahub/internal/microservices/realtime"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg *config.Config
	log *slog.Logger

	db         *gorm.DB
	store      *repository.Store
	redis      *redis.Client
	client     *realtime.Client
	relay      *realtime.Relay
	dispatcher *realtime.Dispatcher
	handler    http.Handler

	closeOnce sync.Once
}

// Options override the pieces tests need to replace.
type Options struct {
	Dialer    realtime.Dialer
	Dialector gorm.Dialector // replaces cfg.DatabaseURL
}

// New opens the store and builds the client, relay, dispatcher and router.
// Nothing is connected or served until Run.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	a := &App{cfg: cfg, log: logger}

	var err error
	if opts.Dialector != nil {
		a.db, err = database.Open(opts.Dialector)
	} else {
		a.db, err = database.ConnectDB(cfg, logger)
	}
	if err != nil {
		return nil, err
	}
	a.store = repository.NewStore(a.db)

	var registerer prometheus.Registerer
	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		registerer, gatherer = registry, registry
	}

	fallback := realtime.Endpoint{Host: cfg.SyncHost, Port: cfg.SyncPort}
	endpoint := service.ResolveEndpoint(ctx, a.store.Settings, fallback, logger)

	a.client = realtime.NewClient(realtime.Options{
		Endpoint:       endpoint,
		ConnectTimeout: cfg.ConnectTimeout,
		ReconnectDelay: cfg.ReconnectDelay,
		WriteTimeout:   cfg.WriteTimeout,
		PingInterval:   cfg.PingInterval,
		Dialer:         opts.Dialer,
		Logger:         logger,
		Registerer:     registerer,
	})

	outbox, err := a.newOutbox(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.OutboxDrainRate), 1)
	a.relay = realtime.NewRelay(a.client, outbox, limiter, logger)
	a.dispatcher = realtime.NewDispatcher(realtime.StoreFromRepositories(a.store), logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.handler = handler.NewRouter(handler.Services{
		Villas:       service.NewVillaService(a.store.Villas, a.relay),
		Contacts:     service.NewContactService(a.store.Contacts, a.relay),
		Companies:    service.NewCompanyService(a.store.Companies, a.relay),
		Cargos:       service.NewCargoService(a.store.Cargos, a.relay),
		Associations: service.NewAssociationService(a.store.VillaContacts, a.store.CompanyContacts, a.relay),
		Settings:     service.NewSettingsService(a.store.Settings, a.client, a.relay, logger),
		Events:       a.client,
		Gatherer:     gatherer,
	}, logger)

	return a, nil
}

func (a *App) newOutbox(ctx context.Context) (realtime.Outbox, error) {
	switch a.cfg.OutboxBackend {
	case config.OutboxRedis:
		rdb, err := realtime.NewRedisClient(ctx, a.cfg.RedisURL, a.cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.log.Info("outbox_ready", "backend", "redis", "key", a.cfg.RedisOutboxKey)
		return realtime.NewRedisOutbox(rdb, a.cfg.RedisOutboxKey, a.cfg.OutboxCapacity), nil
	case config.OutboxNone:
		return nil, nil
	default:
		a.log.Info("outbox_ready", "backend", "memory", "capacity", a.cfg.OutboxCapacity)
		return realtime.NewMemoryOutbox(a.cfg.OutboxCapacity), nil
	}
}

func (a *App) Handler() http.Handler { return a.handler }

func (a *App) Client() *realtime.Client { return a.client }

func (a *App) Store() *repository.Store { return a.store }

// Run starts the dispatcher and relay, connects, and serves the local API on
// ln until ctx is done. A failed first connect is not fatal: the client keeps
// retrying in the background.
func (a *App) Run(ctx context.Context, ln net.Listener) error {
	// subscribe before connecting so the first Connected event reaches both
	dispatchEvents, stopDispatch := a.client.Events()
	relayEvents, stopRelay := a.client.Events()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.dispatcher.Run(ctx, dispatchEvents)
	}()
	go func() {
		defer wg.Done()
		a.relay.Run(ctx, relayEvents)
	}()

	if err := a.client.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Warn("initial_connect_failed", "endpoint", a.client.Endpoint().String(), "error", err)
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("api_listening", "addr", ln.Addr().String())
		serveErr <- srv.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("serve local api: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// Disconnect closes the event bus, which ends open SSE streams
	a.client.Disconnect()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		a.log.Warn("api_shutdown_failed", "error", shutdownErr)
	}

	stopDispatch()
	stopRelay()
	wg.Wait()
	a.log.Info("agent_stopped")
	return err
}

// Close releases the store and the redis connection. It does not stop a
// running Run; cancel its context for that.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		if a.client != nil {
			a.client.Disconnect()
		}
		if a.redis != nil {
			err = errors.Join(err, a.redis.Close())
		}
		if a.db != nil {
			err = errors.Join(err, database.Close(a.db))
		}
	})
	return err
}
