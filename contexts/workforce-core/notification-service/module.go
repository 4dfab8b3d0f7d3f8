package notificationservice

import (
	"log/slog"

	"foreman/contexts/workforce-core/notification-service/adapters/bus"
	httpadapter "foreman/contexts/workforce-core/notification-service/adapters/http"
	"foreman/contexts/workforce-core/notification-service/application"
	"foreman/contexts/workforce-core/notification-service/ports"
	"foreman/internal/platform/messaging"
)

type Module struct {
	Handler     httpadapter.Handler
	Distributor application.Distributor
}

type Dependencies struct {
	Bus    ports.Bus
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	distributor := application.Distributor{
		Bus:    deps.Bus,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Distributor: distributor,
			Logger:      deps.Logger,
		},
		Distributor: distributor,
	}
}

// NewKafkaModule wires the distributor onto the platform messaging bus.
func NewKafkaModule(kafka *messaging.Kafka, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Bus:    bus.KafkaBus{Kafka: kafka},
		Logger: logger,
	})
}
