package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/rumbos-envios/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) exportShipments(c *gin.Context) {
	filter, err := shipmentFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.svc.Shipments.ExportShipments(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, xlsxContentType, result)
}

func (h *Handler) shipmentsMap(c *gin.Context) {
	filter := model.MapFilter{Kind: model.MapFilterKind(strings.TrimSpace(c.DefaultQuery("tipo", string(model.MapFilterActive))))}
	runID, err := queryUUID(c, "reparto_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if runID != nil {
		filter.RunID = *runID
	}
	points, err := h.svc.Shipments.ListForMap(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, points)
}

func (h *Handler) pendingShipments(c *gin.Context) {
	companyID, err := queryUUID(c, "empresa_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	rows, err := h.svc.Shipments.ListPendingForSelect(c.Request.Context(), companyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, rows)
}

func (h *Handler) shipmentStatusCounts(c *gin.Context) {
	counts, err := h.svc.Shipments.StatusCounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, counts)
}
