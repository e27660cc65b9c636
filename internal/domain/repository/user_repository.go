package repository

import (
	"context"

	"github.com/goodnews-kr/platform-api/internal/domain/entity"
)

// UserRepository defines the persistence contract for the User aggregate.
// Lookups return apperrors.NotFoundError when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Save inserts u and returns the persisted aggregate with the generated
	// id and timestamps filled in.
	Save(ctx context.Context, u entity.User) (*entity.User, error)
	Update(ctx context.Context, u entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.User, error)
}
