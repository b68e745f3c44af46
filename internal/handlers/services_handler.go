package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/httpresp"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/catalogue"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

type ServicesHandler struct {
	catalogue *catalogue.Service
}

func NewServicesHandler(cat *catalogue.Service) *ServicesHandler {
	return &ServicesHandler{catalogue: cat}
}

func (h *ServicesHandler) List(c *gin.Context) {
	services, err := h.catalogue.ListServices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServicesHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}

	svc, err := h.catalogue.CreateService(c.Request.Context(), caller(c), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServicesHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeServiceNotFound))
		return
	}

	in, ok := h.bind(c)
	if !ok {
		return
	}

	svc, err := h.catalogue.UpdateService(c.Request.Context(), caller(c), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServicesHandler) bind(c *gin.Context) (validators.ServiceInput, bool) {
	raw, ok := bindRaw(c)
	if !ok {
		return validators.ServiceInput{}, false
	}
	in, err := validators.Service(raw)
	if err != nil {
		httperr.Respond(c, err)
		return validators.ServiceInput{}, false
	}
	return in, true
}
