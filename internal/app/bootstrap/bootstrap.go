package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	accessservice "foreman/contexts/identity-access/access-service"
	contractorservice "foreman/contexts/workforce-core/contractor-service"
	contractorevents "foreman/contexts/workforce-core/contractor-service/adapters/events"
	contractormemory "foreman/contexts/workforce-core/contractor-service/adapters/memory"
	contractorpg "foreman/contexts/workforce-core/contractor-service/adapters/postgres"
	contractorworkers "foreman/contexts/workforce-core/contractor-service/application/workers"
	contractorentities "foreman/contexts/workforce-core/contractor-service/domain/entities"
	notificationservice "foreman/contexts/workforce-core/notification-service"
	timesheetservice "foreman/contexts/workforce-core/timesheet-service"
	timesheetevents "foreman/contexts/workforce-core/timesheet-service/adapters/events"
	timesheetmemory "foreman/contexts/workforce-core/timesheet-service/adapters/memory"
	timesheetpg "foreman/contexts/workforce-core/timesheet-service/adapters/postgres"
	timesheetworkers "foreman/contexts/workforce-core/timesheet-service/application/workers"
	"foreman/internal/platform/config"
	"foreman/internal/platform/db"
	"foreman/internal/platform/httpserver"
	"foreman/internal/platform/messaging"
)

// Package bootstrap is the composition root. All cross-slice wiring happens
// here so the slices themselves stay oblivious of each other.

const relayBatchSize = 100

// relay is anything that drains one outbox batch.
type relay interface {
	RunOnce(ctx context.Context) error
}

type APIApp struct {
	server       *httpserver.Server
	postgres     *db.Postgres
	relays       []relay
	pollInterval time.Duration
	logger       *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relays       []relay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, cfg.SubscriberBuffer, logger)
	if err != nil {
		return nil, err
	}

	access := accessservice.NewModule(accessservice.Dependencies{Logger: logger})
	notifications := notificationservice.NewKafkaModule(kafka, logger)
	blobs := timesheetmemory.NewBlobStore()

	app := &APIApp{
		pollInterval: 2 * time.Second,
		logger:       logger,
	}

	var (
		contractors contractorservice.Module
		timesheets  timesheetservice.Module
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := contractorpg.Migrate(pg.DB); err != nil {
			return nil, err
		}
		if err := timesheetpg.Migrate(pg.DB); err != nil {
			return nil, err
		}

		contractorRepo := contractorpg.NewRepository(pg.DB, logger)
		timesheetRepo := timesheetpg.NewRepository(pg.DB, logger)

		// Events ride the outbox written inside each mutation transaction,
		// so the use cases get no direct publisher on this path.
		contractors = contractorservice.NewModule(contractorservice.Dependencies{
			Repo:         contractorRepo,
			Timesheets:   timesheetDirectory{repo: timesheetRepo},
			Clock:        contractorpg.SystemClock{},
			IDGenerator:  contractorpg.UUIDGenerator{},
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
		})
		timesheets = timesheetservice.NewModule(timesheetservice.Dependencies{
			Repo:         timesheetRepo,
			Directory:    contractorDirectory{repo: contractorRepo},
			Blobs:        blobs,
			Clock:        timesheetpg.SystemClock{},
			IDGenerator:  timesheetpg.UUIDGenerator{},
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
		})

		if cfg.EnableOutboxRelay {
			app.relays = []relay{
				contractorworkers.OutboxRelay{
					Outbox:    contractorRepo,
					Publisher: contractorevents.BusPublisher{Bus: kafka, Logger: logger},
					Clock:     contractorpg.SystemClock{},
					BatchSize: relayBatchSize,
					Logger:    logger,
				},
				timesheetworkers.OutboxRelay{
					Outbox:    timesheetRepo,
					Publisher: timesheetevents.BusPublisher{Bus: kafka, Logger: logger},
					Clock:     timesheetpg.SystemClock{},
					BatchSize: relayBatchSize,
					Logger:    logger,
				},
			}
		}
		app.postgres = pg
	} else {
		// Local development wiring: in-memory stores, events published on
		// the bus directly after each store write returns. Publication runs
		// outside the store lock, so two concurrent same-org mutations may
		// publish out of commit order; strict per-org ordering holds only on
		// the outbox path, which drains rows in commit order.
		contractorStore := contractormemory.NewStore(demoSeed())
		timesheetStore := timesheetmemory.NewStore()

		contractors = contractorservice.NewModule(contractorservice.Dependencies{
			Repo:         contractorStore,
			Timesheets:   timesheetDirectory{repo: timesheetStore},
			Publisher:    contractorevents.BusPublisher{Bus: kafka, Logger: logger},
			Clock:        contractorStore,
			IDGenerator:  contractorStore,
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
		})
		timesheets = timesheetservice.NewModule(timesheetservice.Dependencies{
			Repo:         timesheetStore,
			Directory:    contractorDirectory{repo: contractorStore},
			Blobs:        blobs,
			Publisher:    timesheetevents.BusPublisher{Bus: kafka, Logger: logger},
			Clock:        timesheetStore,
			IDGenerator:  timesheetStore,
			WriteTimeout: cfg.WriteTimeout,
			Logger:       logger,
		})
	}

	app.server = httpserver.New(access, contractors, timesheets, notifications, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, cfg.SubscriberBuffer, logger)
	if err != nil {
		return nil, err
	}

	contractorRepo := contractorpg.NewRepository(pg.DB, logger)
	timesheetRepo := timesheetpg.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		relays: []relay{
			contractorworkers.OutboxRelay{
				Outbox:    contractorRepo,
				Publisher: contractorevents.BusPublisher{Bus: kafka, Logger: logger},
				Clock:     contractorpg.SystemClock{},
				BatchSize: relayBatchSize,
				Logger:    logger,
			},
			timesheetworkers.OutboxRelay{
				Outbox:    timesheetRepo,
				Publisher: timesheetevents.BusPublisher{Bus: kafka, Logger: logger},
				Clock:     timesheetpg.SystemClock{},
				BatchSize: relayBatchSize,
				Logger:    logger,
			},
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"relay_enabled", len(a.relays) > 0,
	)

	if len(a.relays) > 0 {
		go runRelays(ctx, a.relays, a.pollInterval, a.logger)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	runRelays(ctx, w.relays, w.pollInterval, w.logger)
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// runRelays drains every outbox on a shared ticker. A failed pass is logged
// and retried on the next tick rather than ending the loop.
func runRelays(ctx context.Context, relays []relay, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		for _, r := range relays {
			if err := r.RunOnce(ctx); err != nil {
				logger.Error("outbox relay pass failed",
					"event", "outbox_relay_pass_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// demoSeed backs the in-memory wiring with one organization and one boss so
// the full apply/review/submit flow works out of the box.
func demoSeed() contractormemory.Seed {
	now := time.Now().UTC()
	return contractormemory.Seed{
		Organizations: []contractorentities.Organization{
			{OrgID: "org-demo", Name: "Demo Organization", CreatedAt: now},
		},
		Bosses: []contractorentities.Boss{
			{BossID: "boss-demo", OrgID: "org-demo", Name: "Demo Boss", Email: "boss@demo.local", CreatedAt: now},
		},
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
