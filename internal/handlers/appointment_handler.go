package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/dto"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/ora-fixa/internal/usecase/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book       *ucAppointment.BookAppointment
	walkIn     *ucAppointment.AddWalkIn
	transition *ucAppointment.TransitionAppointment
	loc        *time.Location
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	walkIn *ucAppointment.AddWalkIn,
	transition *ucAppointment.TransitionAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		walkIn:     walkIn,
		transition: transition,
		loc:        loc,
	}
}

// ======================================================
// BOOK (client)
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	in, err := validators.Booking(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap, h.loc))
}

// ======================================================
// WALK-IN (admin)
// ======================================================

func (h *AppointmentHandler) WalkIn(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	in, err := validators.WalkIn(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.walkIn.Execute(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap, h.loc))
}

// ======================================================
// TRANSITIONS
// ======================================================

// Cancel is the client's own cancellation.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.apply(c, domain.ActionCancel)
}

// Transition serves /appointments/:id/:action for admins.
func (h *AppointmentHandler) Transition(c *gin.Context) {
	h.apply(c, domain.Action(c.Param("action")))
}

func (h *AppointmentHandler) apply(c *gin.Context, action domain.Action) {
	in, err := validators.AppointmentID(validators.Raw{"appointmentId": c.Param("id")})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), caller(c), in.AppointmentID, action)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap, h.loc))
}
