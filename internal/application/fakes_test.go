package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/domain/service"
	"github.com/goodnews-kr/platform-api/internal/domain/valueobject"
	"github.com/goodnews-kr/platform-api/internal/infrastructure/token"
)

// memUserRepo is an in-memory UserRepository with the same uniqueness and
// not-found semantics as the Postgres implementation.
type memUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]entity.User
	updErr  error
	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return &u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *memUserRepo) Save(_ context.Context, u entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, apperrors.Conflict("email already registered")
		}
	}
	u.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = u
	return &u, nil
}

func (r *memUserRepo) Update(_ context.Context, u entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updErr != nil {
		return nil, r.updErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return nil, apperrors.NotFound("user")
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return &u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user")
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) FindAll(_ context.Context, limit, offset int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[int64]entity.UserProfile
	saveErr  error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[int64]entity.UserProfile)}
}

func (r *memProfileRepo) FindByUserID(_ context.Context, userID int64) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("user profile")
	}
	return &p, nil
}

func (r *memProfileRepo) Save(_ context.Context, p entity.UserProfile) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.profiles[p.UserID] = p
	return &p, nil
}

func (r *memProfileRepo) Update(_ context.Context, p entity.UserProfile) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.UserID]; !ok {
		return nil, apperrors.NotFound("user profile")
	}
	p.UpdatedAt = time.Now().UTC()
	r.profiles[p.UserID] = p
	return &p, nil
}

var (
	_ repository.UserRepository        = (*memUserRepo)(nil)
	_ repository.UserProfileRepository = (*memProfileRepo)(nil)
)

var errStorage = errors.New("storage unavailable")

// newTestAuthService issues real HS256 pairs backed by an in-memory store so
// rotation and revocation behave exactly like production.
func newTestAuthService() service.AuthService {
	return token.NewJWTAuthService("test-access", "test-refresh", time.Minute, time.Hour, token.NewMemoryRefreshTokenStore())
}

func seedUser(r *memUserRepo, email, password string) *entity.User {
	p, err := valueobject.NewPasswordWithCost(password, bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	hash := p.Hash()
	u, err := r.Save(context.Background(), entity.User{
		Email:        email,
		Name:         "Seed User",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		LoginType:    entity.LoginTypeEmail,
		UserType:     entity.UserTypeNormal,
		PasswordHash: &hash,
	})
	if err != nil {
		panic(err)
	}
	return u
}
