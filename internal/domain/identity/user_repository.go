package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByRole(ctx context.Context, role Role, filter shared.Filter) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
