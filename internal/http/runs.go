package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

func (h *Handler) listRuns(c *gin.Context) {
	filter, err := runFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.svc.Runs.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getRun(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	run, err := h.svc.Runs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, run)
}

func (h *Handler) createRun(c *gin.Context) {
	req := model.RunCreateRequest{DeliveryRun: validation.Run.New()}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	result, err := h.svc.Runs.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, result)
}

// createBatchRun answers 201 even when some clients were skipped; the
// skipped list and any link warning travel in the body.
func (h *Handler) createBatchRun(c *gin.Context) {
	var req model.BatchRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	result, err := h.svc.Runs.CreateBatch(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, result)
}

func (h *Handler) updateRun(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	patch, err := decodePatch(c, validation.Run)
	if err != nil {
		h.handleError(c, err)
		return
	}
	run, err := h.svc.Runs.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, run)
}

func (h *Handler) deleteRun(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if err := h.svc.Runs.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status model.ShipmentStatus `json:"estatus" binding:"required"`
}

func (h *Handler) updateRunStatus(c *gin.Context) {
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
	run, err := h.svc.Runs.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, run)
}

type moveRequest struct {
	Direction model.MoveDirection `json:"direccion" binding:"required,oneof=up down"`
}

func (h *Handler) moveStop(c *gin.Context) {
	runID, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	stopID, err := pathID(c, "stopId")
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	result, err := h.svc.Runs.MoveStop(c.Request.Context(), runID, stopID, req.Direction)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}

type reorderRequest struct {
	Updates []model.SequenceUpdate `json:"paradas" binding:"required"`
}

func (h *Handler) reorderStops(c *gin.Context) {
	runID, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, badBody(err))
		return
	}
	stops, err := h.svc.Runs.ReorderStops(c.Request.Context(), runID, req.Updates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, stops)
}

func (h *Handler) reconcileRun(c *gin.Context) {
	runID, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.svc.Runs.ReconcileRun(c.Request.Context(), runID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}

func (h *Handler) runSheet(c *gin.Context) {
	runID, err := pathID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.svc.Runs.RunSheet(c.Request.Context(), runID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, "application/pdf", result)
}
