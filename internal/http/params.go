package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/service"
)

func badBody(err error) error {
	return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return id, nil
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return &id, nil
}

func queryDate(c *gin.Context, name string) (*model.Date, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return &date, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return &value, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return value, nil
}

func listQuery(c *gin.Context) (model.ListQuery, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return model.ListQuery{}, err
	}
	size, err := queryInt(c, "page_size")
	if err != nil {
		return model.ListQuery{}, err
	}
	return model.ListQuery{
		Page:   model.Page{Page: page, PageSize: size},
		Search: strings.TrimSpace(c.Query("q")),
	}, nil
}

func driverFilter(c *gin.Context) (model.DriverFilter, error) {
	query, err := listQuery(c)
	if err != nil {
		return model.DriverFilter{}, err
	}
	filter := model.DriverFilter{ListQuery: query}
	if raw := strings.TrimSpace(c.Query("estatus")); raw != "" {
		status := model.DriverStatus(raw)
		filter.Status = &status
	}
	return filter, nil
}

func catalogFilter(c *gin.Context) (model.CatalogFilter, error) {
	query, err := listQuery(c)
	if err != nil {
		return model.CatalogFilter{}, err
	}
	active, err := queryBool(c, "activo")
	if err != nil {
		return model.CatalogFilter{}, err
	}
	return model.CatalogFilter{ListQuery: query, Active: active}, nil
}

func rateFilter(c *gin.Context) (model.RateFilter, error) {
	query, err := listQuery(c)
	if err != nil {
		return model.RateFilter{}, err
	}
	serviceTypeID, err := queryUUID(c, "tipo_servicio_id")
	if err != nil {
		return model.RateFilter{}, err
	}
	filter := model.RateFilter{ListQuery: query, ServiceTypeID: serviceTypeID}
	if raw := strings.TrimSpace(c.Query("tipo_calculadora_servicio")); raw != "" {
		calculator := model.CalculatorType(raw)
		filter.CalculatorType = &calculator
	}
	return filter, nil
}

func shipmentFilter(c *gin.Context) (model.ShipmentFilter, error) {
	query, err := listQuery(c)
	if err != nil {
		return model.ShipmentFilter{}, err
	}
	filter := model.ShipmentFilter{ListQuery: query}
	if raw := strings.TrimSpace(c.Query("estatus")); raw != "" {
		status := model.ShipmentStatus(raw)
		if !status.Valid() {
			return model.ShipmentFilter{}, fmt.Errorf("%w: invalid estatus", service.ErrInvalidInput)
		}
		filter.Status = &status
	}
	if filter.ClientID, err = queryUUID(c, "cliente_id"); err != nil {
		return model.ShipmentFilter{}, err
	}
	if filter.DriverID, err = queryUUID(c, "repartidor_id"); err != nil {
		return model.ShipmentFilter{}, err
	}
	if filter.From, err = queryDate(c, "fecha_inicio"); err != nil {
		return model.ShipmentFilter{}, err
	}
	if filter.To, err = queryDate(c, "fecha_fin"); err != nil {
		return model.ShipmentFilter{}, err
	}
	return filter, nil
}

func runFilter(c *gin.Context) (model.RunFilter, error) {
	query, err := listQuery(c)
	if err != nil {
		return model.RunFilter{}, err
	}
	filter := model.RunFilter{ListQuery: query}
	if filter.DriverID, err = queryUUID(c, "repartidor_id"); err != nil {
		return model.RunFilter{}, err
	}
	if filter.Date, err = queryDate(c, "fecha"); err != nil {
		return model.RunFilter{}, err
	}
	return filter, nil
}
