package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ora-fixa/internal/dto"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/dashboard"
)

type DashboardHandler struct {
	load *dashboard.Load
	loc  *time.Location
}

func NewDashboardHandler(load *dashboard.Load, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{load: load, loc: loc}
}

type dashboardResponse struct {
	*dashboard.View
	Appointments []dto.AppointmentDTO `json:"appointments"`
}

// Get serves GET /api/admin/dashboard?date=YYYY-MM-DD (default today).
func (h *DashboardHandler) Get(c *gin.Context) {
	date, err := queryDate(c, "date", h.loc)
	if err != nil {
		httperr.Respond(c, fieldError("date", "Data este invalidă."))
		return
	}

	view, err := h.load.Execute(c.Request.Context(), caller(c), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dashboardResponse{
		View:         view,
		Appointments: dto.FromAppointments(view.Appointments, h.loc),
	})
}
