package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/auth"
	"github.com/mrwaste/wastecrm/internal/config"
	"github.com/mrwaste/wastecrm/internal/db"
	"github.com/mrwaste/wastecrm/internal/excel"
	httphandler "github.com/mrwaste/wastecrm/internal/http"
	"github.com/mrwaste/wastecrm/internal/logger"
	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pdf"
	"github.com/mrwaste/wastecrm/internal/repository"
	"github.com/mrwaste/wastecrm/internal/repository/boltstore"
	"github.com/mrwaste/wastecrm/internal/service"
)

type storage struct {
	subcontractors service.SubcontractorRepository
	rates          service.RateRepository
	customers      service.CustomerRepository
	requests       service.ServiceRequestRepository
	close          func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	store, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("failed to open storage")
	}
	defer store.close()

	subcontractorService := service.NewSubcontractorService(store.subcontractors, store.rates, cfg.Pricing.NearbyRadiusKm)
	rateService := service.NewRateService(store.rates, store.subcontractors, excel.NewGenerator())
	customerService := service.NewCustomerService(store.customers, store.requests)
	requestService := service.NewServiceRequestService(
		store.requests,
		store.subcontractors,
		store.rates,
		pdf.NewGenerator(),
		model.Company{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			Email:   cfg.Company.Email,
			Phone:   cfg.Company.Phone,
		},
		log,
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(subcontractorService, rateService, customerService, requestService, log)
	router := httphandler.NewRouter(handler, tokenParser, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("storage", cfg.DB.Driver).Msg("starting crm service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		store.close()
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.DB.Driver {
	case config.StorageDriverBolt:
		store, err := boltstore.Open(cfg.DB.BoltPath)
		if err != nil {
			return nil, err
		}
		return &storage{
			subcontractors: store,
			rates:          store,
			customers:      store,
			requests:       store,
			close:          store.Close,
		}, nil
	default:
		database, err := db.New(cfg, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		return &storage{
			subcontractors: repository.NewSubcontractorRepository(database),
			rates:          repository.NewRateRepository(database),
			customers:      repository.NewCustomerRepository(database),
			requests:       repository.NewServiceRequestRepository(database),
			close:          sqlDB.Close,
		}, nil
	}
}
