package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// NoticeHandler exposes staff notice management.
type NoticeHandler struct {
	notices *service.NoticeService
}

// NewNoticeHandler constructs handler.
func NewNoticeHandler(notices *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// List godoc
// @Summary Notices visible to the signed-in staff member
// @Tags Notices
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	notices, err := h.notices.List(c.Request.Context(), *auth, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices)
}

// Create godoc
// @Summary Post a notice, optionally with an attachment
// @Tags Notices
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/notices [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	var req models.CreateNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload"))
		return
	}
	attachment, closeUpload, err := formUpload(c, "attachment")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "could not read uploaded file"))
		return
	}
	defer closeUpload()

	notice, err := h.notices.Create(c.Request.Context(), *auth, req, attachment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// Get godoc
// @Summary One notice for staff review, scoped to the actor's department
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} response.Envelope
// @Router /admin/notices/{id} [get]
func (h *NoticeHandler) Get(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	notice, err := h.notices.Find(c.Request.Context(), *auth, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Delete godoc
// @Summary Soft-delete a notice
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 204
// @Router /admin/notices/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	if err := h.notices.Delete(c.Request.Context(), *auth, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
