package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"foreman/contexts/identity-access/access-service/application"
	"foreman/contexts/identity-access/access-service/domain/entities"
	domainerrors "foreman/contexts/identity-access/access-service/domain/errors"
	"foreman/contexts/identity-access/access-service/ports"
)

// HeaderIdentity trusts identity headers populated by the edge proxy.
// It stands in for the real token-verifying identity collaborator and keeps
// the same IdentityProvider contract.
type HeaderIdentity struct {
	Logger *slog.Logger
}

var _ ports.IdentityProvider = HeaderIdentity{}

func (h HeaderIdentity) Authenticate(_ context.Context, creds ports.Credentials) (entities.Principal, error) {
	principal := entities.Principal{
		UserID: strings.TrimSpace(creds.UserID),
		Role:   strings.ToLower(strings.TrimSpace(creds.Role)),
		OrgID:  strings.TrimSpace(creds.OrgID),
	}
	if !principal.Validate() {
		application.ResolveLogger(h.Logger).Warn("identity resolution failed",
			"event", "identity_resolution_failed",
			"module", "identity-access/access-service",
			"layer", "adapter",
			"role", creds.Role,
		)
		return entities.Principal{}, domainerrors.ErrAuthFailed
	}
	return principal, nil
}
