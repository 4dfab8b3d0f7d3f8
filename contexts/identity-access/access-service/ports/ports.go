package ports

import (
	"context"

	"foreman/contexts/identity-access/access-service/domain/entities"
)

// Credentials is the opaque material handed to the identity collaborator.
// The core never inspects secrets; it only consumes the resolved principal.
type Credentials struct {
	UserID string
	Role   string
	OrgID  string
	Token  string
}

// IdentityProvider authenticates credentials into a principal.
// Password hashing and token issuance live with the collaborator.
type IdentityProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (entities.Principal, error)
}
