package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/api/metrics"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

// ProfileHandler handles the account-scoped endpoints: profile view, profile
// image upload and account deletion.
type ProfileHandler struct {
	service ports.PlaneService
	files   FileStore
}

func NewProfileHandler(service ports.PlaneService, files FileStore) *ProfileHandler {
	return &ProfileHandler{service: service, files: files}
}

// Get handles GET /api/profile.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Profile(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Username:       profile.Username,
		ProfileImage:   profile.ProfileImagePath,
		NumberOfPlanes: profile.NumberOfPlanes,
	})
}

// UploadImage handles POST /api/upload-profile-image.
//
// @Summary      Upload a profile image
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        profileImage  formData  file  true  "Profile image"
// @Success      200  {object}  uploadResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/upload-profile-image [post]
func (h *ProfileHandler) UploadImage(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	path, err := formUpload(c, h.files, "profileImage", true)
	if err != nil {
		return err
	}

	if err := h.service.SetProfileImage(c.Request().Context(), email, path); err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("profile").Inc()

	return c.JSON(http.StatusOK, uploadResponse{ProfileImage: path})
}

// DeleteAccount handles DELETE /api/delete-account. Removes the caller's
// sightings, then the account itself.
//
// @Summary      Delete the caller's account and all their sightings
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/delete-account [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.Request().Context(), email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}
