package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurpe/rumbos-envios/internal/ai"
	"github.com/nurpe/rumbos-envios/internal/auth"
	"github.com/nurpe/rumbos-envios/internal/db"
	"github.com/nurpe/rumbos-envios/internal/excel"
	httphandler "github.com/nurpe/rumbos-envios/internal/http"
	"github.com/nurpe/rumbos-envios/internal/http/middleware"
	"github.com/nurpe/rumbos-envios/internal/logger"
	"github.com/nurpe/rumbos-envios/internal/pdf"
	"github.com/nurpe/rumbos-envios/internal/repository"
	"github.com/nurpe/rumbos-envios/internal/service"
	"github.com/nurpe/rumbos-envios/internal/tracking"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	completer, err := ai.NewCompleter(cmd.Context(), cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to init ai client: %w", err)
	}
	if cfg.AI.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; AI endpoints will fail")
	}

	pager := service.Pager{DefaultSize: cfg.List.DefaultPageSize, MaxSize: cfg.List.MaxPageSize}
	companies := repository.NewCompanyRepository(database)
	clients := repository.NewClientRepository(database)
	drivers := repository.NewDriverRepository(database)
	packageTypes := repository.NewPackageTypeRepository(database)
	serviceTypes := repository.NewServiceTypeRepository(database)
	rates := repository.NewRateRepository(database)
	shipments := repository.NewShipmentRepository(database)
	runs := repository.NewRunRepository(database)
	stops := repository.NewStopRepository(database)
	codes := tracking.NewGenerator(cfg.Shipments.TrackingPrefix)

	handler := httphandler.NewHandler(httphandler.Services{
		Companies:    service.NewCompanyService(companies, pager),
		Clients:      service.NewClientService(clients, pager),
		Drivers:      service.NewDriverService(drivers, pager),
		PackageTypes: service.NewPackageTypeService(packageTypes, pager),
		ServiceTypes: service.NewServiceTypeService(serviceTypes, pager),
		Rates:        service.NewRateService(rates, pager),
		Shipments:    service.NewShipmentService(shipments, codes, excel.NewGenerator(), pager),
		Runs: service.NewRunService(service.RunDeps{
			Runs:      runs,
			Stops:     stops,
			Shipments: shipments,
			Companies: companies,
			Clients:   clients,
			Drivers:   drivers,
			Tracking:  codes,
			Sheets:    pdf.NewGenerator(),
			Pager:     pager,
			Log:       log,
		}),
		Stops:     service.NewStopService(stops, runs, shipments, log),
		Lookups:   service.NewLookupService(companies, drivers, serviceTypes, packageTypes),
		Assistant: ai.NewAssistant(completer, log),
	}, log)

	authMiddleware := middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	router := httphandler.NewRouter(handler, authMiddleware, cfg.HTTP, cfg.Environment, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting rumbos api")
	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	return nil
}
