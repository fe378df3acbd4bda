package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// ResultHandler exposes staff result management.
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler constructs handler.
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// List godoc
// @Summary Results visible to the signed-in staff member
// @Tags Results
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/results [get]
func (h *ResultHandler) List(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	results, err := h.results.List(c.Request.Context(), *auth, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Create godoc
// @Summary Publish a result, optionally with a file
// @Tags Results
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/results [post]
func (h *ResultHandler) Create(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	var req models.CreateResultRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload"))
		return
	}
	file, closeUpload, err := formUpload(c, "file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "could not read uploaded file"))
		return
	}
	defer closeUpload()

	result, err := h.results.Create(c.Request.Context(), *auth, c.PostForm("department"), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary One result for staff review, scoped to the actor's department
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Router /admin/results/{id} [get]
func (h *ResultHandler) Get(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	result, err := h.results.Find(c.Request.Context(), *auth, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Soft-delete a result
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 204
// @Router /admin/results/{id} [delete]
func (h *ResultHandler) Delete(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	if err := h.results.Delete(c.Request.Context(), *auth, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
