package repository

import (
	"context"

	"github.com/goodnews-kr/platform-api/internal/domain/entity"
)

// UserProfileRepository defines the persistence contract for the optional
// 1:1 profile extension of a User.
type UserProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*entity.UserProfile, error)
	Save(ctx context.Context, p entity.UserProfile) (*entity.UserProfile, error)
	Update(ctx context.Context, p entity.UserProfile) (*entity.UserProfile, error)
}
