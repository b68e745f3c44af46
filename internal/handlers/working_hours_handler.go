package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/catalogue"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// WorkingHoursHandler administers the weekly schedule and per-date
// overrides.
type WorkingHoursHandler struct {
	catalogue *catalogue.Service
	loc       *time.Location
}

func NewWorkingHoursHandler(cat *catalogue.Service, loc *time.Location) *WorkingHoursHandler {
	return &WorkingHoursHandler{catalogue: cat, loc: loc}
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	rows, err := h.catalogue.ListWorkSchedules(c.Request.Context(), caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.WorkSchedules(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	rows, err := h.catalogue.ReplaceWorkSchedules(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

// ======================================================
// OVERRIDES
// ======================================================

// ListOverrides returns overrides from ?from=YYYY-MM-DD on (default today).
func (h *WorkingHoursHandler) ListOverrides(c *gin.Context) {
	from, err := queryDate(c, "from", h.loc)
	if err != nil {
		httperr.Respond(c, fieldError("from", "Data este invalidă."))
		return
	}

	rows, err := h.catalogue.ListOverrides(c.Request.Context(), caller(c), from.Format(timezone.DateLayout))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *WorkingHoursHandler) SaveOverride(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.Override(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	row, err := h.catalogue.SaveOverride(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, row)
}
