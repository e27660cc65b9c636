package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/domain/apperrors"
	"github.com/goodnews-kr/platform-api/internal/domain/entity"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/pkg/helpers"
)

// ProfileUseCase reads and updates the extended profile of an authenticated
// user, including avatar uploads to GCS.
type ProfileUseCase struct {
	Users     repository.UserRepository
	Profiles  repository.UserProfileRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProfileUseCase(users repository.UserRepository, profiles repository.UserProfileRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *ProfileUseCase {
	return &ProfileUseCase{Users: users, Profiles: profiles, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

// ProfileView combines the user record with its optional profile extension.
type ProfileView struct {
	User    UserView            `json:"user"`
	Profile *entity.UserProfile `json:"profile,omitempty"`
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID int64) (*ProfileView, error) {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &ProfileView{User: viewOf(u)}
	p, err := uc.Profiles.FindByUserID(ctx, userID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	view.Profile = p
	return view, nil
}

// UpdateProfileInput carries the mutable profile fields; empty strings leave
// the current value untouched.
type UpdateProfileInput struct {
	Name         string
	ChurchName   string
	Position     string
	Denomination string
	Address      string
	Postcode     string
}

func (uc *ProfileUseCase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (*ProfileView, error) {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		updated, err := uc.Users.Update(ctx, u.WithName(in.Name))
		if err != nil {
			return nil, err
		}
		u = updated
	}

	p, err := uc.Profiles.FindByUserID(ctx, userID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if p == nil {
		p = &entity.UserProfile{UserID: userID}
	}
	if in.ChurchName != "" {
		p.ChurchName = in.ChurchName
	}
	if in.Position != "" {
		p.Position = in.Position
	}
	if in.Denomination != "" {
		p.Denomination = in.Denomination
	}
	if in.Address != "" {
		p.Address = in.Address
	}
	if in.Postcode != "" {
		p.Postcode = in.Postcode
	}
	var saved *entity.UserProfile
	if p.CreatedAt.IsZero() {
		saved, err = uc.Profiles.Save(ctx, *p)
	} else {
		saved, err = uc.Profiles.Update(ctx, *p)
	}
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: viewOf(u), Profile: saved}, nil
}

// UploadAvatar stores the image in GCS and points the user record at it.
func (uc *ProfileUseCase) UploadAvatar(ctx context.Context, userID int64, r io.Reader, filename, contentType string) (string, error) {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.Email, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, uc.GCS, uc.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if _, err := uc.Users.Update(ctx, u.WithAvatarURL(url)); err != nil {
		return "", err
	}
	return url, nil
}
