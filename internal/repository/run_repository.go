package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type RunRepository struct {
	table[model.DeliveryRun]
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{table[model.DeliveryRun]{
		db:     db,
		search: []string{"nombre_reparto"},
		order:  "fecha_reparto DESC, created_at DESC",
	}}
}

func (r *RunRepository) List(ctx context.Context, filter model.RunFilter) (model.ListResult[model.DeliveryRun], error) {
	result, err := r.list(ctx, filter.ListQuery, func(q *gorm.DB) *gorm.DB {
		if filter.DriverID != nil {
			q = q.Where("repartidor_id = ?", *filter.DriverID)
		}
		if filter.Date != nil {
			q = q.Where("fecha_reparto = ?", *filter.Date)
		}
		return q
	})
	if err != nil {
		return result, err
	}

	refs := make([]*uuidRef, len(result.Data))
	for i := range result.Data {
		run := &result.Data[i]
		driverID := run.DriverID
		refs[i] = &uuidRef{id: &driverID, target: &run.Driver}
	}
	if err := resolve(ctx, r.db, "repartidores", "nombre_completo", refs); err != nil {
		return result, err
	}
	return result, nil
}

// GetWithStops returns the run with its driver name and its stops ordered
// by sequence, each carrying a summary of its shipment.
func (r *RunRepository) GetWithStops(ctx context.Context, id uuid.UUID) (*model.DeliveryRun, error) {
	run, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var driverName string
	err = r.db.WithContext(ctx).Raw(`
		SELECT nombre_completo FROM repartidores WHERE id = ?
	`, run.DriverID).Scan(&driverName).Error
	if err != nil {
		return nil, err
	}
	if driverName != "" {
		run.Driver = &model.Ref{ID: run.DriverID, Name: driverName}
	}

	stops, err := NewStopRepository(r.db).ListByRun(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Stops = stops
	return run, nil
}

func (r *RunRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus) error {
	result := r.db.WithContext(ctx).Model(&model.DeliveryRun{}).Where("id = ?", id).Update("estatus", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type StopRepository struct {
	table[model.Stop]
}

func NewStopRepository(db *gorm.DB) *StopRepository {
	return &StopRepository{table[model.Stop]{
		db:     db,
		search: []string{"direccion_parada", "nombre_contacto_parada"},
		order:  "secuencia_parada ASC",
	}}
}

// CreateBatch inserts every stop in a single statement.
func (r *StopRepository) CreateBatch(ctx context.Context, stops []model.Stop) error {
	if len(stops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&stops).Error
}

func (r *StopRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]model.Stop, error) {
	var rows []struct {
		model.Stop
		ShipmentTracking    *string
		ShipmentDestination *string
		ShipmentClientID    *uuid.UUID
		ShipmentStatus      *model.ShipmentStatus
		ShipmentClientName  *string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.*,
			e.tracking_number AS shipment_tracking,
			e.direccion_destino AS shipment_destination,
			e.cliente_id AS shipment_client_id,
			e.estatus AS shipment_status,
			c.nombre_completo AS shipment_client_name
		FROM paradas_reparto p
		LEFT JOIN envios e ON e.id = p.envio_id
		LEFT JOIN clientes c ON c.id = e.cliente_id
		WHERE p.reparto_id = ?
		ORDER BY p.secuencia_parada ASC
	`, runID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stops := make([]model.Stop, 0, len(rows))
	for _, row := range rows {
		stop := row.Stop
		if stop.ShipmentID != nil && row.ShipmentTracking != nil {
			summary := &model.StopShipment{
				ID:             *stop.ShipmentID,
				TrackingNumber: *row.ShipmentTracking,
				ClientName:     row.ShipmentClientName,
			}
			if row.ShipmentDestination != nil {
				summary.DestinationAddress = *row.ShipmentDestination
			}
			if row.ShipmentClientID != nil {
				summary.ClientID = *row.ShipmentClientID
			}
			if row.ShipmentStatus != nil {
				summary.Status = *row.ShipmentStatus
			}
			stop.Shipment = summary
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func (r *StopRepository) UpdateSequence(ctx context.Context, id uuid.UUID, sequence int) error {
	return r.updateColumns(ctx, id, map[string]any{"secuencia_parada": sequence})
}

// UpdateStatus writes the stop status and stamps arrival or departure
// times for the statuses that imply them.
func (r *StopRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, at time.Time) error {
	changes := map[string]any{"estatus_parada": status}
	switch status {
	case model.StatusArriving:
		changes["hora_real_llegada"] = at
	case model.StatusDelivered, model.StatusNotDelivered, model.StatusReturnedToOrigin:
		changes["hora_real_salida"] = at
	}
	return r.updateColumns(ctx, id, changes)
}

func (r *StopRepository) updateColumns(ctx context.Context, id uuid.UUID, changes map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Stop{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
