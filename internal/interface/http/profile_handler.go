package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodnews-kr/platform-api/internal/application"
	"github.com/goodnews-kr/platform-api/internal/domain/repository"
	"github.com/goodnews-kr/platform-api/internal/interface/middleware"
	"github.com/goodnews-kr/platform-api/pkg/response"
	"github.com/goodnews-kr/platform-api/pkg/validation"
)

// ProfileHandler serves the authenticated user's profile plus the admin
// member listing/search endpoints.
type ProfileHandler struct {
	Profile   *application.ProfileUseCase
	Users     repository.UserRepository
	Directory *application.UserDirectory
	Logger    *logrus.Logger
}

func NewProfileHandler(profile *application.ProfileUseCase, users repository.UserRepository, directory *application.UserDirectory, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profile: profile, Users: users, Directory: directory, Logger: logger}
}

type updateProfileRequest struct {
	Name         string `json:"name"`
	ChurchName   string `json:"church_name"`
	Position     string `json:"position"`
	Denomination string `json:"denomination"`
	Address      string `json:"address"`
	Postcode     string `json:"postcode"`
}

// GetProfile GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.Profile.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Profile.Update(c.Request.Context(), middleware.UserID(c), application.UpdateProfileInput{
		Name:         req.Name,
		ChurchName:   req.ChurchName,
		Position:     req.Position,
		Denomination: req.Denomination,
		Address:      req.Address,
		Postcode:     req.Postcode,
	})
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart form, field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Profile.UploadAvatar(c.Request.Context(), middleware.UserID(c), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("avatar upload failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// ListUsers GET /api/admin/users?limit=&offset=
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, err := h.Users.FindAll(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	views := make([]application.UserView, 0, len(users))
	for i := range users {
		u := users[i]
		views = append(views, application.UserView{
			ID:              u.ID,
			Email:           u.Email,
			Name:            u.Name,
			Role:            u.Role,
			LoginType:       u.LoginType,
			IsEmailVerified: u.IsEmailVerified(),
			UserType:        u.UserType,
		})
	}
	response.Success(c, http.StatusOK, views, "users", gin.H{"limit": limit, "offset": offset})
}

// SearchUsers GET /api/admin/users/search?q=&size=
func (h *ProfileHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Directory.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
