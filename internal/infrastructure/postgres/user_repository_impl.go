package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
)

const pgUniqueViolation = "23505"

const userColumns = `id, email, name, role, status, login_type, user_type, username,
	password_hash, phone, email_verified_at, avatar_url, last_login_at, last_login_ip,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Save(ctx context.Context, u entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, role, status, login_type, user_type, username,
			password_hash, phone, email_verified_at, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+userColumns+`
	`, u.Email, u.Name, u.Role, u.Status, u.LoginType, u.UserType, u.Username,
		u.PasswordHash, u.Phone, u.EmailVerifiedAt, u.AvatarURL)

	saved, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, err
	}
	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, u entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email = $1, name = $2, role = $3, status = $4, login_type = $5,
			user_type = $6, username = $7, password_hash = $8, phone = $9,
			email_verified_at = $10, avatar_url = $11, last_login_at = $12,
			last_login_ip = $13, updated_at = $14
		WHERE id = $15
		RETURNING `+userColumns+`
	`, u.Email, u.Name, u.Role, u.Status, u.LoginType, u.UserType, u.Username,
		u.PasswordHash, u.Phone, u.EmailVerifiedAt, u.AvatarURL, u.LastLoginAt,
		u.LastLoginIP, time.Now().UTC(), u.ID)
	return scanUser(row)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Status, &u.LoginType,
		&u.UserType, &u.Username, &u.PasswordHash, &u.Phone, &u.EmailVerifiedAt,
		&u.AvatarURL, &u.LastLoginAt, &u.LastLoginIP, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
