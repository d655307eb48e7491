package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type FormOptions struct {
	Companies    []model.Company     `json:"empresas"`
	Drivers      []model.Driver      `json:"repartidores"`
	ServiceTypes []model.ServiceType `json:"tipos_servicio"`
	PackageTypes []model.PackageType `json:"tipos_paquete"`
}

type LookupService struct {
	companies    CompanyStore
	drivers      DriverStore
	serviceTypes ServiceTypeStore
	packageTypes PackageTypeStore
}

func NewLookupService(companies CompanyStore, drivers DriverStore, serviceTypes ServiceTypeStore, packageTypes PackageTypeStore) *LookupService {
	return &LookupService{
		companies:    companies,
		drivers:      drivers,
		serviceTypes: serviceTypes,
		packageTypes: packageTypes,
	}
}

// FormOptions loads the select lists of the planning forms concurrently.
// The reads are independent; the first error cancels the rest.
func (s *LookupService) FormOptions(ctx context.Context) (*FormOptions, error) {
	var out FormOptions
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.companies.ListActive(ctx)
		out.Companies = rows
		return gateway(err, "list empresas")
	})
	g.Go(func() error {
		rows, err := s.drivers.ListAvailable(ctx)
		out.Drivers = rows
		return gateway(err, "list repartidores")
	})
	g.Go(func() error {
		rows, err := s.serviceTypes.ListActive(ctx)
		out.ServiceTypes = rows
		return gateway(err, "list tipos de servicio")
	})
	g.Go(func() error {
		rows, err := s.packageTypes.ListActive(ctx)
		out.PackageTypes = rows
		return gateway(err, "list tipos de paquete")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
