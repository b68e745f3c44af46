package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/auditlog"
)

type AuditLogsHandler struct {
	list *auditlog.List
}

func NewAuditLogsHandler(list *auditlog.List) *AuditLogsHandler {
	return &AuditLogsHandler{list: list}
}

// List serves GET /api/admin/audit-logs?limit=N.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.Respond(c, fieldError("limit", "Se așteaptă un număr întreg."))
			return
		}
		limit = n
	}

	logs, err := h.list.Execute(c.Request.Context(), caller(c), limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, logs)
}
