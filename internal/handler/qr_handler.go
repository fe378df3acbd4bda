package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

const qrSize = 300

// QRHandler renders QR codes pointing phones at the public detail pages.
type QRHandler struct {
	publicBaseURL string
}

// NewQRHandler constructs handler. publicBaseURL overrides the request host
// when the API sits behind a proxy; empty means derive from the request.
func NewQRHandler(publicBaseURL string) *QRHandler {
	return &QRHandler{publicBaseURL: publicBaseURL}
}

// Generate godoc
// @Summary PNG QR code linking to a notice, event or result
// @Tags Display
// @Produce png
// @Param kind path string true "notice, event or result"
// @Param id path string true "Content ID"
// @Success 200 {file} binary
// @Router /qr/{kind}/{id} [get]
func (h *QRHandler) Generate(c *gin.Context) {
	kind := c.Param("kind")
	switch kind {
	case "notice", "event", "result":
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "kind must be notice, event or result"))
		return
	}
	id := c.Param("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "content id required"))
		return
	}

	base := h.publicBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}
	target := fmt.Sprintf("%s/%s/%s", base, kind, id)

	png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "failed to render QR code"))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
