package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/profile"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

type ClientHandler struct {
	profiles *profile.Service
}

func NewClientHandler(profiles *profile.Service) *ClientHandler {
	return &ClientHandler{profiles: profiles}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.profiles.ListClients(c.Request.Context(), caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clients)
}

// Update lets an admin edit a client's account, notes included.
func (h *ClientHandler) Update(c *gin.Context) {
	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeClientNotFound))
		return
	}

	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	in, err := validators.Account(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.profiles.UpdateAccount(c.Request.Context(), caller(c), target, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}
