package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

const mapPointLimit = 500

type ShipmentRepository struct {
	table[model.Shipment]
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{table[model.Shipment]{
		db: db,
		search: []string{
			"tracking_number",
			"direccion_origen",
			"direccion_destino",
			"contacto_origen_nombre",
			"contacto_destino_nombre",
		},
		order: "fecha_solicitud DESC",
	}}
}

func (r *ShipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	shipment, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachRefs(ctx, []*model.Shipment{shipment}); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter model.ShipmentFilter) (model.ListResult[model.Shipment], error) {
	result, err := r.list(ctx, filter.ListQuery, shipmentScope(filter))
	if err != nil {
		return result, err
	}
	rows := make([]*model.Shipment, len(result.Data))
	for i := range result.Data {
		rows[i] = &result.Data[i]
	}
	if err := r.attachRefs(ctx, rows); err != nil {
		return result, err
	}
	return result, nil
}

func shipmentScope(filter model.ShipmentFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			q = q.Where("estatus = ?", *filter.Status)
		}
		if filter.ClientID != nil {
			q = q.Where("cliente_id = ?", *filter.ClientID)
		}
		if filter.DriverID != nil {
			q = q.Where("repartidor_asignado_id = ?", *filter.DriverID)
		}
		if filter.From != nil {
			q = q.Where("fecha_solicitud >= ?", filter.From.Time)
		}
		if filter.To != nil {
			q = q.Where("fecha_solicitud < ?", filter.To.AddDate(0, 0, 1))
		}
		return q
	}
}

// ListPendingForSelect returns shipments still waiting for a run, oldest
// first, optionally limited to one origin company.
func (r *ShipmentRepository) ListPendingForSelect(ctx context.Context, companyID *uuid.UUID, limit int) ([]model.Shipment, error) {
	q := r.db.WithContext(ctx).
		Where("estatus IN ?", []model.ShipmentStatus{model.StatusPendingPickup, model.StatusPendingConfirmation})
	if companyID != nil {
		q = q.Where("empresa_origen_id = ?", *companyID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var shipments []model.Shipment
	if err := q.Order("created_at ASC").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *ShipmentRepository) ListForMap(ctx context.Context, filter model.MapFilter) ([]model.MapPoint, error) {
	q := r.db.WithContext(ctx).
		Table("envios e").
		Select(`
			e.id,
			e.tracking_number,
			e.direccion_destino AS address,
			e.latitud_destino AS lat,
			e.longitud_destino AS lng,
			e.estatus AS status,
			e.reparto_id AS run_id,
			c.nombre_completo AS client_name
		`).
		Joins("LEFT JOIN clientes c ON c.id = e.cliente_id").
		Where("e.latitud_destino IS NOT NULL AND e.longitud_destino IS NOT NULL")

	switch filter.Kind {
	case model.MapFilterRun:
		q = q.Where("e.reparto_id = ?", filter.RunID)
	case model.MapFilterActive:
		q = q.Where("e.estatus NOT IN ?", []model.ShipmentStatus{
			model.StatusDelivered, model.StatusCancelled, model.StatusFailed,
		})
	case model.MapFilterUnassigned:
		q = q.Where("e.reparto_id IS NULL").Where("e.estatus IN ?", []model.ShipmentStatus{
			model.StatusPendingConfirmation, model.StatusPendingPickup, model.StatusPickedUp,
		})
	}

	points := make([]model.MapPoint, 0)
	if err := q.Limit(mapPointLimit).Scan(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *ShipmentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	var shipments []model.Shipment
	if len(ids) == 0 {
		return shipments, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Shipment{}).Error
}

// AssignToRun writes the run and driver back-references and the new status
// on every listed shipment.
func (r *ShipmentRepository) AssignToRun(
	ctx context.Context,
	ids []uuid.UUID,
	runID uuid.UUID,
	driverID uuid.UUID,
	status model.ShipmentStatus,
) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Shipment{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"reparto_id":             runID,
			"repartidor_asignado_id": driverID,
			"estatus":                status,
		}).Error
}

// UpdateStatus writes a shipment status. deliveredAt is stored only when set.
func (r *ShipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, deliveredAt *time.Time) error {
	changes := map[string]any{"estatus": status}
	if deliveredAt != nil {
		changes["fecha_entrega_real"] = *deliveredAt
	}
	result := r.db.WithContext(ctx).Model(&model.Shipment{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus returns how many shipments carry each status.
func (r *ShipmentRepository) CountByStatus(ctx context.Context) (map[model.ShipmentStatus]int64, error) {
	var rows []struct {
		Status model.ShipmentStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Shipment{}).
		Select("estatus AS status, COUNT(*) AS total").
		Group("estatus").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.ShipmentStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *ShipmentRepository) attachRefs(ctx context.Context, shipments []*model.Shipment) error {
	var clients, companies, packages, services, drivers []*uuidRef
	for _, s := range shipments {
		clientID, serviceID := s.ClientID, s.ServiceTypeID
		clients = append(clients, &uuidRef{id: &clientID, target: &s.Client})
		companies = append(companies, &uuidRef{id: s.OriginCompanyID, target: &s.OriginCompany})
		packages = append(packages, &uuidRef{id: s.PackageTypeID, target: &s.PackageType})
		services = append(services, &uuidRef{id: &serviceID, target: &s.ServiceType})
		drivers = append(drivers, &uuidRef{id: s.AssignedDriverID, target: &s.AssignedDriver})
	}
	lookups := []struct {
		table, column string
		refs          []*uuidRef
	}{
		{"clientes", "nombre_completo", clients},
		{"empresas", "nombre", companies},
		{"tipos_paquete", "nombre", packages},
		{"tipos_servicio", "nombre", services},
		{"repartidores", "nombre_completo", drivers},
	}
	for _, l := range lookups {
		if err := resolve(ctx, r.db, l.table, l.column, l.refs); err != nil {
			return err
		}
	}
	return nil
}
