package handler

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// AttendanceHandler exposes the attendance register.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	metrics    *service.MetricsService
	logger     *zap.Logger
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService, metrics *service.MetricsService, logger *zap.Logger) *AttendanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceHandler{attendance: attendance, metrics: metrics, logger: logger}
}

// Mark godoc
// @Summary Mark present/absent statuses for one date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.MarkAttendanceRequest true "Statuses"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	var req models.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload"))
		return
	}
	result, err := h.attendance.Mark(c.Request.Context(), *auth, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Sheet godoc
// @Summary Marking sheet for one date with any saved statuses
// @Tags Attendance
// @Produce json
// @Param year query string true "Year"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param department query string false "Department code, principal only"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance/sheet [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	view, err := h.attendance.Sheet(c.Request.Context(), *auth, c.Query("department"), c.Query("year"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Register godoc
// @Summary Rolling ten-day register for a year
// @Tags Attendance
// @Produce json
// @Param year query string true "Year"
// @Param department query string false "Department code, principal only"
// @Success 200 {object} response.Envelope
// @Router /admin/attendance/register [get]
func (h *AttendanceHandler) Register(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	view, err := h.attendance.Register(c.Request.Context(), *auth, c.Query("department"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Export godoc
// @Summary Download the register as xlsx, csv or pdf
// @Tags Attendance
// @Produce octet-stream
// @Param year query string true "Year"
// @Param format query string false "xlsx, csv or pdf (default xlsx)"
// @Param department query string false "Department code, principal only"
// @Success 200 {file} binary
// @Router /admin/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	result, err := h.attendance.Export(c.Request.Context(), *auth, c.Query("department"), c.Query("year"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountExport(result.Format)

	file, err := h.attendance.Open(result.Filename)
	if err != nil {
		h.logger.Error("failed to open export file", zap.String("filename", result.Filename), zap.Error(err))
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export file unavailable"))
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Content-Type", contentTypeFor(result.Format))
	http.ServeContent(c.Writer, c.Request, result.Filename, fileModTime(file), file)
}

func fileModTime(file *os.File) time.Time {
	info, err := file.Stat()
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

func contentTypeFor(format string) string {
	switch format {
	case service.ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case service.ExportFormatCSV:
		return "text/csv"
	case service.ExportFormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
