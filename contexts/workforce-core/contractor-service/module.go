package contractorservice

import (
	"log/slog"
	"time"

	httpadapter "foreman/contexts/workforce-core/contractor-service/adapters/http"
	"foreman/contexts/workforce-core/contractor-service/adapters/memory"
	"foreman/contexts/workforce-core/contractor-service/application/commands"
	"foreman/contexts/workforce-core/contractor-service/application/queries"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo         ports.Repository
	Timesheets   ports.TimesheetDirectory
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	applyContractor := commands.ApplyContractorUseCase{
		Repo:         deps.Repo,
		Publisher:    deps.Publisher,
		Clock:        deps.Clock,
		IDGen:        deps.IDGenerator,
		WriteTimeout: deps.WriteTimeout,
		Logger:       deps.Logger,
	}
	reviewContractor := commands.ReviewContractorUseCase{
		Repo:         deps.Repo,
		Publisher:    deps.Publisher,
		Clock:        deps.Clock,
		WriteTimeout: deps.WriteTimeout,
		Logger:       deps.Logger,
	}
	setPayRate := commands.SetPayRateUseCase{
		Repo:         deps.Repo,
		Clock:        deps.Clock,
		WriteTimeout: deps.WriteTimeout,
		Logger:       deps.Logger,
	}
	listContractors := queries.ListContractorsUseCase{
		Repo:       deps.Repo,
		Timesheets: deps.Timesheets,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			ApplyContractor:  applyContractor,
			ReviewContractor: reviewContractor,
			SetPayRate:       setPayRate,
			ListContractors:  listContractors,
			Logger:           deps.Logger,
		},
	}
}

// NewInMemoryModule wires the slice onto the in-memory store, which also
// serves as clock and ID generator. Timesheets and Publisher still come from
// the caller because both cross the slice boundary.
func NewInMemoryModule(
	seed memory.Seed,
	timesheets ports.TimesheetDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repo:        store,
		Timesheets:  timesheets,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
