package ports

import (
	"context"

	"github.com/colosseum-network/colosseumd/internal/core/domain"
)

// IdentityVerifier resolves a presented credential into a stable identity.
type IdentityVerifier interface {
	// Verify checks that the credential is valid and belongs to the required
	// class, and returns the identity it proves.
	Verify(
		ctx context.Context, credential domain.Credential, requiredClass string,
	) (string, error)
}
