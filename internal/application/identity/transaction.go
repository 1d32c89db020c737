package identity

import (
	"context"

	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/partner"
)

// TransactionalRepositories provides repositories scoped to one transaction.
// Vendor signup writes the user and the vendor record through this, so a
// failure in either leaves no half-created account behind.
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	VendorRepo() partner.VendorRepository
}

// TransactionScope executes repository operations atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
