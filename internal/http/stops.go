package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/rumbos-envios/internal/http/middleware"
	"github.com/nurpe/rumbos-envios/internal/service"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

func (h *Handler) listStops(c *gin.Context) {
	runID, err := queryUUID(c, "reparto_id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if runID == nil {
		h.handleError(c, fmt.Errorf("%w: reparto_id is required", service.ErrInvalidInput))
		return
	}
	result, err := h.svc.Stops.ListByRun(c.Request.Context(), *runID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getStop(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	stop, err := h.svc.Stops.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, stop)
}

func (h *Handler) createStop(c *gin.Context) {
	stop := validation.Stop.New()
	if err := c.ShouldBindJSON(&stop); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	created, err := h.svc.Stops.Add(c.Request.Context(), stop)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

func (h *Handler) updateStop(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	patch, err := decodePatch(c, validation.Stop)
	if err != nil {
		h.handleError(c, err)
		return
	}
	stop, err := h.svc.Stops.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, stop)
}

func (h *Handler) deleteStop(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.svc.Stops.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// updateStopStatus is open to drivers; the service restricts them to
// their own runs.
func (h *Handler) updateStopStatus(c *gin.Context) {
	principal, found := middleware.MustPrincipal(c)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	result, err := h.svc.Stops.UpdateStatus(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}
