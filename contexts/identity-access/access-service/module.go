package accessservice

import (
	"log/slog"

	httpadapter "foreman/contexts/identity-access/access-service/adapters/http"
	"foreman/contexts/identity-access/access-service/application"
	"foreman/contexts/identity-access/access-service/ports"
)

type Module struct {
	Guard    application.Guard
	Identity ports.IdentityProvider
}

type Dependencies struct {
	Identity ports.IdentityProvider
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	identity := deps.Identity
	if identity == nil {
		identity = httpadapter.HeaderIdentity{Logger: deps.Logger}
	}
	return Module{
		Guard:    application.Guard{Logger: deps.Logger},
		Identity: identity,
	}
}
