package persistence

import (
	"context"

	appidentity "github.com/runmarket/backend/internal/application/identity"
	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormTransactionScope implements the identity TransactionScope using GORM
// transactions, so the vendor signup saga commits or rolls back as one unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the user repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// VendorRepo returns the vendor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorRepo() partner.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

var _ appidentity.TransactionScope = (*GormTransactionScope)(nil)
var _ appidentity.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
