package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/rumbos-envios/internal/ai"
	"github.com/nurpe/rumbos-envios/internal/model"
)

func (h *Handler) suggestRoutes(c *gin.Context) {
	var input ai.RoutesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	out, err := h.svc.Assistant.SuggestDeliveryRoutes(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

func (h *Handler) suggestOptions(c *gin.Context) {
	var input ai.OptionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	out, err := h.svc.Assistant.SuggestDeliveryOptions(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

func (h *Handler) prioritize(c *gin.Context) {
	var input ai.PrioritizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	out, err := h.svc.Assistant.PrioritizeDeliverySchedule(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// summarize falls back to the current shipment counts per status when the
// caller sends no data of its own.
func (h *Handler) summarize(c *gin.Context) {
	var input ai.SummaryInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			h.handleError(c, badBody(err))
			return
		}
	}
	if strings.TrimSpace(input.DeliveryData) == "" {
		counts, err := h.svc.Shipments.StatusCounts(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		input.DeliveryData = describeCounts(counts)
	}
	out, err := h.svc.Assistant.SummarizeDeliveryData(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

func describeCounts(counts map[model.ShipmentStatus]int64) string {
	var b strings.Builder
	b.WriteString("Envíos por estado:\n")
	for _, status := range model.AllStatuses() {
		fmt.Fprintf(&b, "- %s: %d\n", status, counts[status])
	}
	return b.String()
}
