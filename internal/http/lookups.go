package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/rumbos-envios/internal/service"
)

func (h *Handler) formOptions(c *gin.Context) {
	options, err := h.svc.Lookups.FormOptions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, options)
}

func (h *Handler) listClientsByCompany(c *gin.Context) {
	companyID, err := pathID(c, "companyId")
	if err != nil {
		h.handleError(c, err)
		return
	}
	clients, err := h.svc.Clients.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, clients)
}

func (h *Handler) listActiveClients(c *gin.Context) {
	clients, err := h.svc.Clients.ListActiveForSelect(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, clients)
}

func (h *Handler) quote(c *gin.Context) {
	var input service.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	quote, err := h.svc.Rates.Quote(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, quote)
}
