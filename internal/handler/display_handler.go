package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/service"
	"github.com/sincet/noticeboard-api/pkg/config"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// DisplayHandler exposes the public viewer and TV display endpoints. These
// routes need no session; every TV and visitor reads from them.
type DisplayHandler struct {
	display *service.DisplayService
	notices *service.NoticeService
	events  *service.EventService
	results *service.ResultService
	media   *service.MediaService
	college config.CollegeConfig
}

// NewDisplayHandler constructs handler.
func NewDisplayHandler(display *service.DisplayService, notices *service.NoticeService, events *service.EventService, results *service.ResultService, media *service.MediaService, college config.CollegeConfig) *DisplayHandler {
	return &DisplayHandler{display: display, notices: notices, events: events, results: results, media: media, college: college}
}

// Board godoc
// @Summary Full TV rotation for a department ("all" for college-wide)
// @Tags Display
// @Produce json
// @Param department path string true "Department code or all"
// @Success 200 {object} response.Envelope
// @Router /display/{department} [get]
func (h *DisplayHandler) Board(c *gin.Context) {
	department := c.Param("department")
	if department != service.DepartmentAll {
		if _, ok := h.college.DepartmentByCode(department); !ok {
			c.Redirect(http.StatusFound, "/api/display/"+service.DepartmentAll)
			return
		}
	}
	view, err := h.display.Board(c.Request.Context(), department)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Viewer godoc
// @Summary Public viewer page data: all active notices, events and results
// @Tags Display
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /viewer [get]
func (h *DisplayHandler) Viewer(c *gin.Context) {
	ctx := c.Request.Context()
	notices, err := h.notices.PublicList(ctx, service.DepartmentAll)
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.events.PublicList(ctx, service.DepartmentAll)
	if err != nil {
		response.Error(c, err)
		return
	}
	results, err := h.results.PublicList(ctx, service.DepartmentAll)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"notices": notices,
		"events":  events,
		"results": results,
	})
}

// Settings godoc
// @Summary Display durations for a department
// @Tags Display
// @Produce json
// @Param department path string true "Department code or all"
// @Success 200 {object} response.Envelope
// @Router /settings/{department} [get]
func (h *DisplayHandler) Settings(c *gin.Context) {
	settings, err := h.display.Settings(c.Request.Context(), c.Param("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Notices godoc
// @Summary Active notices for a department's public board
// @Tags Display
// @Produce json
// @Param department path string true "Department code"
// @Success 200 {object} response.Envelope
// @Router /notices/{department} [get]
func (h *DisplayHandler) Notices(c *gin.Context) {
	notices, err := h.notices.PublicList(c.Request.Context(), c.Param("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notices)
}

// Events godoc
// @Summary Active events for a department, soonest first
// @Tags Display
// @Produce json
// @Param department path string true "Department code"
// @Success 200 {object} response.Envelope
// @Router /events/{department} [get]
func (h *DisplayHandler) Events(c *gin.Context) {
	events, err := h.events.PublicList(c.Request.Context(), c.Param("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}

// Results godoc
// @Summary Active results for a department
// @Tags Display
// @Produce json
// @Param department path string true "Department code"
// @Success 200 {object} response.Envelope
// @Router /results/{department} [get]
func (h *DisplayHandler) Results(c *gin.Context) {
	results, err := h.results.PublicList(c.Request.Context(), c.Param("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Media godoc
// @Summary Active display media for a department
// @Tags Display
// @Produce json
// @Param department path string true "Department code"
// @Param type query string false "image or video"
// @Success 200 {object} response.Envelope
// @Router /media/{department} [get]
func (h *DisplayHandler) Media(c *gin.Context) {
	media, err := h.media.PublicList(c.Request.Context(), c.Param("department"), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, media)
}

// Notice godoc
// @Summary One notice; every visit counts a view
// @Tags Display
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} response.Envelope
// @Router /notice/{id} [get]
func (h *DisplayHandler) Notice(c *gin.Context) {
	notice, err := h.notices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Event godoc
// @Summary One event's public detail
// @Tags Display
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /event/{id} [get]
func (h *DisplayHandler) Event(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Result godoc
// @Summary One result's public detail
// @Tags Display
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Router /result/{id} [get]
func (h *DisplayHandler) Result(c *gin.Context) {
	result, err := h.results.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
