package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ora-fixa/internal/dto"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/profile"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	profiles *profile.Service
	loc      *time.Location
}

func NewMeHandler(profiles *profile.Service, loc *time.Location) *MeHandler {
	return &MeHandler{profiles: profiles, loc: loc}
}

// ======================================================
// READ
// ======================================================

func (h *MeHandler) Me(c *gin.Context) {
	p, err := h.profiles.Me(c.Request.Context(), caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *MeHandler) Stats(c *gin.Context) {
	stats, err := h.profiles.Stats(c.Request.Context(), caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *MeHandler) Appointments(c *gin.Context) {
	apps, err := h.profiles.Appointments(c.Request.Context(), caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromAppointments(apps, h.loc))
}

// ======================================================
// UPDATE
// ======================================================

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.Profile(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *MeHandler) UpdateAccount(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.Account(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	who := caller(c)
	p, err := h.profiles.UpdateAccount(c.Request.Context(), who, who.ID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *MeHandler) UpdatePreferences(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.Preferences(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.profiles.UpdatePreferences(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}
