package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/middleware"
	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// AuthHandler exposes login, logout and session inspection.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, logger: logger}
}

// Login godoc
// @Summary Shared-password login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload"))
		return
	}

	auth, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := middleware.SetAuth(c, *auth); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "failed to start session"))
		return
	}

	redirect := middleware.ViewerPath
	if auth.Role.Admin() {
		redirect = "/dashboard"
	}
	response.JSON(c, http.StatusOK, gin.H{"user": auth, "redirect": redirect})
}

// Logout godoc
// @Summary End the session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearAuth(c); err != nil {
		h.logger.Warn("failed to clear session", zap.Error(err))
	}
	response.JSON(c, http.StatusOK, gin.H{"redirect": middleware.LoginPath})
}

// Session godoc
// @Summary Current session and queued flash messages
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	payload := gin.H{"flashes": middleware.Flashes(c)}
	if auth := middleware.AuthFromSession(c); auth != nil {
		payload["user"] = auth
	}
	response.JSON(c, http.StatusOK, payload)
}
