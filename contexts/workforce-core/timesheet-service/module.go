package timesheetservice

import (
	"log/slog"
	"time"

	httpadapter "foreman/contexts/workforce-core/timesheet-service/adapters/http"
	"foreman/contexts/workforce-core/timesheet-service/adapters/memory"
	"foreman/contexts/workforce-core/timesheet-service/application/commands"
	"foreman/contexts/workforce-core/timesheet-service/application/queries"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Blobs   *memory.BlobStore
}

type Dependencies struct {
	Repo         ports.Repository
	Directory    ports.ContractorDirectory
	Blobs        ports.BlobStore
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitTimesheet := commands.SubmitTimesheetUseCase{
		Repo:         deps.Repo,
		Directory:    deps.Directory,
		Blobs:        deps.Blobs,
		Publisher:    deps.Publisher,
		Clock:        deps.Clock,
		IDGen:        deps.IDGenerator,
		WriteTimeout: deps.WriteTimeout,
		Logger:       deps.Logger,
	}
	listTimesheets := queries.ListTimesheetsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SubmitTimesheet: submitTimesheet,
			ListTimesheets:  listTimesheets,
			Blobs:           deps.Blobs,
			Logger:          deps.Logger,
		},
	}
}

// NewInMemoryModule wires the slice onto the in-memory ledger and blob
// store. The contractor directory and publisher cross slice boundaries and
// come from the caller.
func NewInMemoryModule(
	directory ports.ContractorDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	blobs := memory.NewBlobStore()
	module := NewModule(Dependencies{
		Repo:        store,
		Directory:   directory,
		Blobs:       blobs,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Blobs = blobs
	return module
}
