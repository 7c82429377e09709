package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// CalendarHandler 客户日历订阅
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ClientCalendar 当前客户的用工与维修排期（iCalendar）
// GET /api/client/calendar.ics
func (h *CalendarHandler) ClientCalendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	ics, err := h.calendarSvc.ClientCalendar(c.Request.Context(), caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
