package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type DriverRepository struct {
	table[model.Driver]
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{table[model.Driver]{
		db:     db,
		search: []string{"nombre_completo", "email", "telefono", "placa_vehiculo"},
		order:  "created_at DESC",
	}}
}

func (r *DriverRepository) List(ctx context.Context, filter model.DriverFilter) (model.ListResult[model.Driver], error) {
	return r.list(ctx, filter.ListQuery, func(q *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			q = q.Where("estatus = ?", *filter.Status)
		}
		return q
	})
}

// ListAvailable returns active drivers free to take a run.
func (r *DriverRepository) ListAvailable(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).
		Where("activo = ? AND estatus = ?", true, model.DriverAvailable).
		Order("nombre_completo ASC").
		Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DriverStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Driver{}).
		Where("id = ?", id).
		Update("estatus", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
