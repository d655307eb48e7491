package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type CompanyRepository struct {
	table[model.Company]
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{table[model.Company]{
		db:     db,
		search: []string{"nombre", "rfc", "email_contacto"},
		order:  "created_at DESC",
	}}
}

func (r *CompanyRepository) List(ctx context.Context, query model.ListQuery) (model.ListResult[model.Company], error) {
	return r.list(ctx, query, nil)
}

func (r *CompanyRepository) ListActive(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.WithContext(ctx).
		Where("activa = ?", true).
		Order("nombre ASC").
		Find(&companies).Error
	return companies, err
}

type ClientRepository struct {
	table[model.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{table[model.Client]{
		db:     db,
		search: []string{"nombre_completo", "email", "telefono", "direccion_predeterminada"},
		order:  "created_at DESC",
	}}
}

func (r *ClientRepository) List(ctx context.Context, query model.ListQuery) (model.ListResult[model.Client], error) {
	return r.list(ctx, query, nil)
}

// ListByCompany returns the active clients of one company, by name.
func (r *ClientRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("empresa_id = ? AND activo = ?", companyID, true).
		Order("nombre_completo ASC").
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) ListActive(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("nombre_completo ASC").
		Find(&clients).Error
	return clients, err
}
