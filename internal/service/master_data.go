package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type CompanyService struct {
	entity[model.Company, model.ListQuery]
}

func NewCompanyService(store CompanyStore, pager Pager) *CompanyService {
	return &CompanyService{entity[model.Company, model.ListQuery]{
		store: store, schema: validation.Company, pager: pager, label: "empresa",
	}}
}

type ClientService struct {
	entity[model.Client, model.ListQuery]
	clients ClientStore
}

func NewClientService(store ClientStore, pager Pager) *ClientService {
	return &ClientService{
		entity: entity[model.Client, model.ListQuery]{
			store: store, schema: validation.Client, pager: pager, label: "cliente",
		},
		clients: store,
	}
}

// ListByCompany feeds the batch run form with a company's active clients.
func (s *ClientService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Client, error) {
	clients, err := s.clients.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, gateway(err, "list clientes")
	}
	return clients, nil
}

func (s *ClientService) ListActiveForSelect(ctx context.Context) ([]model.Client, error) {
	clients, err := s.clients.ListActive(ctx)
	if err != nil {
		return nil, gateway(err, "list clientes")
	}
	return clients, nil
}

type DriverService struct {
	entity[model.Driver, model.DriverFilter]
}

func NewDriverService(store DriverStore, pager Pager) *DriverService {
	return &DriverService{entity[model.Driver, model.DriverFilter]{
		store: store, schema: validation.Driver, pager: pager, label: "repartidor",
	}}
}

type PackageTypeService struct {
	entity[model.PackageType, model.CatalogFilter]
}

func NewPackageTypeService(store PackageTypeStore, pager Pager) *PackageTypeService {
	return &PackageTypeService{entity[model.PackageType, model.CatalogFilter]{
		store: store, schema: validation.PackageType, pager: pager, label: "tipo de paquete",
	}}
}

type ServiceTypeService struct {
	entity[model.ServiceType, model.CatalogFilter]
}

func NewServiceTypeService(store ServiceTypeStore, pager Pager) *ServiceTypeService {
	return &ServiceTypeService{entity[model.ServiceType, model.CatalogFilter]{
		store: store, schema: validation.ServiceType, pager: pager, label: "tipo de servicio",
	}}
}
