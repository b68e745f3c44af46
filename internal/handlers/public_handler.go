package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/ora-fixa/internal/usecase/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/catalogue"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	catalogue    *catalogue.Service
	availability *ucAppointment.GetAvailability
	loc          *time.Location
}

func NewPublicHandler(
	cat *catalogue.Service,
	availability *ucAppointment.GetAvailability,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		catalogue:    cat,
		availability: availability,
		loc:          loc,
	}
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.catalogue.ListServices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY
// GET /api/public/availability?date=YYYY-MM-DD&service_id=N
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	fe := validators.FieldErrors{}

	date, err := timezone.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		fe.Add("date", "Data este invalidă.")
	}

	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil || serviceID <= 0 {
		fe.Add("service_id", "Selectează un serviciu.")
	}

	if len(fe) > 0 {
		httperr.Respond(c, fe)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
