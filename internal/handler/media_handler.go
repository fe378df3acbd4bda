package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// MediaHandler exposes staff media management.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// List godoc
// @Summary Display media visible to the signed-in staff member
// @Tags Media
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	media, err := h.media.List(c.Request.Context(), *auth, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, media)
}

// Create godoc
// @Summary Upload an image or video for the display rotation
// @Tags Media
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/media [post]
func (h *MediaHandler) Create(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	var req models.CreateMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid media payload"))
		return
	}
	file, closeUpload, err := formUpload(c, "file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "could not read uploaded file"))
		return
	}
	defer closeUpload()

	media, err := h.media.Create(c.Request.Context(), *auth, req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, media)
}

// Delete godoc
// @Summary Soft-delete a media item
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 204
// @Router /admin/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	if err := h.media.Delete(c.Request.Context(), *auth, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
