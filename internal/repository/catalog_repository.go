package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type PackageTypeRepository struct {
	table[model.PackageType]
}

func NewPackageTypeRepository(db *gorm.DB) *PackageTypeRepository {
	return &PackageTypeRepository{table[model.PackageType]{
		db:     db,
		search: []string{"nombre", "descripcion"},
		order:  "nombre ASC",
	}}
}

func (r *PackageTypeRepository) List(ctx context.Context, filter model.CatalogFilter) (model.ListResult[model.PackageType], error) {
	return r.list(ctx, filter.ListQuery, activeScope(filter.Active))
}

func (r *PackageTypeRepository) ListActive(ctx context.Context) ([]model.PackageType, error) {
	var items []model.PackageType
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&items).Error
	return items, err
}

type ServiceTypeRepository struct {
	table[model.ServiceType]
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{table[model.ServiceType]{
		db:     db,
		search: []string{"nombre", "descripcion"},
		order:  "nombre ASC",
	}}
}

func (r *ServiceTypeRepository) List(ctx context.Context, filter model.CatalogFilter) (model.ListResult[model.ServiceType], error) {
	return r.list(ctx, filter.ListQuery, activeScope(filter.Active))
}

func (r *ServiceTypeRepository) ListActive(ctx context.Context) ([]model.ServiceType, error) {
	var items []model.ServiceType
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&items).Error
	return items, err
}

func activeScope(active *bool) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if active != nil {
			q = q.Where("activo = ?", *active)
		}
		return q
	}
}

type RateRepository struct {
	table[model.Rate]
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{table[model.Rate]{
		db:     db,
		search: []string{"zona_geo"},
		order:  "tipo_calculadora_servicio ASC, distancia_min_km ASC",
	}}
}

func (r *RateRepository) List(ctx context.Context, filter model.RateFilter) (model.ListResult[model.Rate], error) {
	result, err := r.list(ctx, filter.ListQuery, func(q *gorm.DB) *gorm.DB {
		if filter.ServiceTypeID != nil {
			q = q.Where("tipo_servicio_id = ?", *filter.ServiceTypeID)
		}
		if filter.CalculatorType != nil {
			q = q.Where("tipo_calculadora_servicio = ?", *filter.CalculatorType)
		}
		return q
	})
	if err != nil {
		return result, err
	}

	rows := make([]*model.Rate, len(result.Data))
	for i := range result.Data {
		rows[i] = &result.Data[i]
	}
	if err := r.attachServiceTypes(ctx, rows); err != nil {
		return result, err
	}
	return result, nil
}

// ListActiveByCalculator returns the active bands of one calculator,
// lowest distance first.
func (r *RateRepository) ListActiveByCalculator(ctx context.Context, calculator model.CalculatorType) ([]model.Rate, error) {
	var rates []model.Rate
	err := r.db.WithContext(ctx).
		Where("tipo_calculadora_servicio = ? AND activo = ?", calculator, true).
		Order("distancia_min_km ASC").
		Find(&rates).Error
	return rates, err
}

func (r *RateRepository) attachServiceTypes(ctx context.Context, rates []*model.Rate) error {
	refs := make([]*uuidRef, 0, len(rates))
	for _, rate := range rates {
		refs = append(refs, &uuidRef{id: rate.ServiceTypeID, target: &rate.ServiceType})
	}
	return resolve(ctx, r.db, "tipos_servicio", "nombre", refs)
}
