package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mrwaste/wastecrm/internal/config"
	"github.com/mrwaste/wastecrm/internal/db"
	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

func openDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("WASTECRM_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("WASTECRM_TEST_DATABASE_DSN not set")
	}
	cfg := &config.Config{Environment: "test", DB: config.DBConfig{Driver: config.StorageDriverPostgres, DSN: dsn}}
	database, err := db.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return database
}

func TestConcurrentServiceRequestsResolveOneCustomer(t *testing.T) {
	ctx := context.Background()
	database := openDatabase(t)
	subcontractors := repository.NewSubcontractorRepository(database)
	customers := repository.NewCustomerRepository(database)
	requests := repository.NewServiceRequestRepository(database)

	sub, err := subcontractors.CreateSubcontractor(ctx, model.Subcontractor{
		Name:      "Milton Bins",
		Location:  "Milton, ON",
		Latitude:  43.5183,
		Longitude: -79.8774,
	})
	if err != nil {
		t.Fatalf("create subcontractor: %v", err)
	}

	email := "dedup-" + uuid.NewString() + "@example.com"
	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := requests.CreateServiceRequest(ctx, model.Customer{Name: "Jane Smith", Email: &email}, model.ServiceRequest{
				SubcontractorID:      sub.ID,
				Address:              "12 Main St, Milton",
				Latitude:             43.51,
				Longitude:            -79.88,
				BinSize:              20,
				ServiceType:          model.ServiceTypeRollOff,
				MaterialType:         model.MaterialTypeWaste,
				ScheduledStart:       time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC),
				AppliedRateStructure: model.RateStructure{FlatRate: model.Amount("450")},
			})
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("create service request: %v", err)
	}

	all, err := customers.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	matches := 0
	for _, c := range all {
		if c.Email != nil && *c.Email == email {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected one customer for %s, got %d", email, matches)
	}
}
