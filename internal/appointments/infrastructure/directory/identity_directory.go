package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	identityDomain "github.com/inheaven/petservice/internal/identity/domain"
)

// IdentityDirectory resolves appointment participants from the identity
// context.
type IdentityDirectory struct {
	users identityDomain.UserRepository
}

// NewIdentityDirectory creates a directory backed by users.
func NewIdentityDirectory(users identityDomain.UserRepository) *IdentityDirectory {
	return &IdentityDirectory{users: users}
}

// ResolveUser returns the participant behind id. Unknown users surface as
// errors wrapping sharedDomain.ErrNotFound.
func (d *IdentityDirectory) ResolveUser(ctx context.Context, id uuid.UUID) (domain.UserRef, error) {
	user, err := d.users.FindByID(ctx, id)
	if err != nil {
		return domain.UserRef{}, err
	}
	return domain.UserRef{
		ID:          user.ID(),
		DisplayName: user.FullName().String(),
		IsDoctor:    user.IsDoctor(),
	}, nil
}
