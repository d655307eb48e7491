package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/rumbos-envios/internal/ai"
	"github.com/nurpe/rumbos-envios/internal/http/middleware"
	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/service"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type Services struct {
	Companies    *service.CompanyService
	Clients      *service.ClientService
	Drivers      *service.DriverService
	PackageTypes *service.PackageTypeService
	ServiceTypes *service.ServiceTypeService
	Rates        *service.RateService
	Shipments    *service.ShipmentService
	Runs         *service.RunService
	Stops        *service.StopService
	Lookups      *service.LookupService
	Assistant    *ai.Assistant
}

type Handler struct {
	svc Services
	log zerolog.Logger
}

func NewHandler(svc Services, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	api.Use(authMiddleware)
	manage := middleware.RequireManager()

	companies := api.Group("/empresas")
	resource[model.Company, model.ListQuery]{h: h, svc: h.svc.Companies, schema: validation.Company, filter: listQuery}.
		register(companies, manage)

	clients := api.Group("/clientes")
	clients.GET("/empresa/:companyId", h.listClientsByCompany)
	clients.GET("/activos", h.listActiveClients)
	resource[model.Client, model.ListQuery]{h: h, svc: h.svc.Clients, schema: validation.Client, filter: listQuery}.
		register(clients, manage)

	resource[model.Driver, model.DriverFilter]{h: h, svc: h.svc.Drivers, schema: validation.Driver, filter: driverFilter}.
		register(api.Group("/repartidores"), manage)
	resource[model.PackageType, model.CatalogFilter]{h: h, svc: h.svc.PackageTypes, schema: validation.PackageType, filter: catalogFilter}.
		register(api.Group("/tipos-paquete"), manage)
	resource[model.ServiceType, model.CatalogFilter]{h: h, svc: h.svc.ServiceTypes, schema: validation.ServiceType, filter: catalogFilter}.
		register(api.Group("/tipos-servicio"), manage)

	rates := api.Group("/tarifas")
	rates.POST("/cotizar", h.quote)
	resource[model.Rate, model.RateFilter]{h: h, svc: h.svc.Rates, schema: validation.Rate, filter: rateFilter}.
		register(rates, manage)

	shipments := api.Group("/envios")
	shipments.GET("/export.xlsx", h.exportShipments)
	shipments.GET("/mapa", h.shipmentsMap)
	shipments.GET("/pendientes", h.pendingShipments)
	shipments.GET("/resumen-estados", h.shipmentStatusCounts)
	resource[model.Shipment, model.ShipmentFilter]{h: h, svc: h.svc.Shipments, schema: validation.Shipment, filter: shipmentFilter}.
		register(shipments, manage)

	runs := api.Group("/repartos")
	runs.GET("", h.listRuns)
	runs.GET("/:id", h.getRun)
	runs.GET("/:id/hoja-ruta.pdf", h.runSheet)
	runs.POST("", manage, h.createRun)
	runs.POST("/lote", manage, h.createBatchRun)
	runs.PATCH("/:id", manage, h.updateRun)
	runs.DELETE("/:id", manage, h.deleteRun)
	runs.PATCH("/:id/estado", manage, h.updateRunStatus)
	runs.POST("/:id/paradas/:stopId/mover", manage, h.moveStop)
	runs.PUT("/:id/paradas/orden", manage, h.reorderStops)
	runs.POST("/:id/reconciliar", manage, h.reconcileRun)

	stops := api.Group("/paradas")
	stops.GET("", h.listStops)
	stops.GET("/:id", h.getStop)
	stops.POST("", manage, h.createStop)
	stops.PATCH("/:id", manage, h.updateStop)
	stops.DELETE("/:id", manage, h.deleteStop)
	stops.PATCH("/:id/estado", h.updateStopStatus)

	api.GET("/formularios/opciones", h.formOptions)

	assistant := api.Group("/ia", manage)
	assistant.POST("/rutas", h.suggestRoutes)
	assistant.POST("/opciones-entrega", h.suggestOptions)
	assistant.POST("/priorizar", h.prioritize)
	assistant.POST("/resumen", h.summarize)
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": fields})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, ai.ErrInvalidInput),
		errors.Is(err, service.ErrNoClientsSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoShipmentsCreated):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ai.ErrAIService):
		c.JSON(http.StatusBadGateway, gin.H{"error": ai.ErrAIService.Error()})
	case errors.Is(err, service.ErrGateway):
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func attachment(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}
