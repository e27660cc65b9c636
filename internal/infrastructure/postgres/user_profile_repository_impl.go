package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
)

const profileColumns = `user_id, church_name, position, denomination, address, postcode,
	birth_date, gender, profile_image, newsletter_subscribe, marketing_agree,
	privacy_agree_date, terms_agree_date, created_at, updated_at`

type UserProfileRepository struct {
	pool *pgxpool.Pool
}

func NewUserProfileRepository(pool *pgxpool.Pool) *UserProfileRepository {
	return &UserProfileRepository{pool: pool}
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

func (r *UserProfileRepository) Save(ctx context.Context, p entity.UserProfile) (*entity.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, church_name, position, denomination, address,
			postcode, birth_date, gender, profile_image, newsletter_subscribe,
			marketing_agree, privacy_agree_date, terms_agree_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+profileColumns+`
	`, p.UserID, p.ChurchName, p.Position, p.Denomination, p.Address, p.Postcode,
		p.BirthDate, p.Gender, p.ProfileImage, p.NewsletterSubscribe, p.MarketingAgree,
		p.PrivacyAgreeDate, p.TermsAgreeDate)
	return scanProfile(row)
}

func (r *UserProfileRepository) Update(ctx context.Context, p entity.UserProfile) (*entity.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE user_profiles
		SET church_name = $1, position = $2, denomination = $3, address = $4,
			postcode = $5, birth_date = $6, gender = $7, profile_image = $8,
			newsletter_subscribe = $9, marketing_agree = $10, updated_at = $11
		WHERE user_id = $12
		RETURNING `+profileColumns+`
	`, p.ChurchName, p.Position, p.Denomination, p.Address, p.Postcode, p.BirthDate,
		p.Gender, p.ProfileImage, p.NewsletterSubscribe, p.MarketingAgree,
		time.Now().UTC(), p.UserID)
	return scanProfile(row)
}

func scanProfile(row rowScanner) (*entity.UserProfile, error) {
	p := &entity.UserProfile{}
	err := row.Scan(&p.UserID, &p.ChurchName, &p.Position, &p.Denomination, &p.Address,
		&p.Postcode, &p.BirthDate, &p.Gender, &p.ProfileImage, &p.NewsletterSubscribe,
		&p.MarketingAgree, &p.PrivacyAgreeDate, &p.TermsAgreeDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user profile")
		}
		return nil, err
	}
	return p, nil
}

var _ repository.UserProfileRepository = (*UserProfileRepository)(nil)
