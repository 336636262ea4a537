package boltstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/geo"
	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func mustSubcontractor(t *testing.T, store *Store, name string, lat, lon float64) *model.Subcontractor {
	t.Helper()
	sub, err := store.CreateSubcontractor(context.Background(), model.Subcontractor{
		Name:      name,
		Location:  name,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		t.Fatalf("create subcontractor: %v", err)
	}
	return sub
}

func mustRate(t *testing.T, store *Store, subID uuid.UUID, effective time.Time, flat string) *model.Rate {
	t.Helper()
	rate, err := store.CreateRate(context.Background(), model.Rate{
		SubcontractorID: subID,
		BinSize:         20,
		ServiceType:     model.ServiceTypeRollOff,
		MaterialType:    model.MaterialTypeWaste,
		RateStructure:   model.RateStructure{FlatRate: model.Amount(flat)},
		EffectiveDate:   effective,
	})
	if err != nil {
		t.Fatalf("create rate: %v", err)
	}
	return rate
}

func TestSubcontractorLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	milton := mustSubcontractor(t, store, "Milton Bins", 43.5183, -79.8774)
	mustSubcontractor(t, store, "Ottawa Disposal", 45.4215, -75.6972)

	got, err := store.GetSubcontractor(ctx, milton.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Milton Bins" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected subcontractor: %+v", got)
	}

	all, err := store.ListSubcontractors(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Milton Bins" {
		t.Fatalf("expected name ordering, got %+v", all)
	}

	within, err := store.ListSubcontractorsWithin(ctx, geo.Around(43.6532, -79.3832, 50))
	if err != nil {
		t.Fatalf("within: %v", err)
	}
	if len(within) != 1 || within[0].ID != milton.ID {
		t.Fatalf("expected only Milton within box, got %+v", within)
	}

	if _, err := store.GetSubcontractor(ctx, uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSubcontractorCascadesRates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sub := mustSubcontractor(t, store, "Milton Bins", 43.5, -79.8)
	rate := mustRate(t, store, sub.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "450")

	if err := store.DeleteSubcontractor(ctx, sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetRate(ctx, rate.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected rate to be removed, got %v", err)
	}
	if err := store.DeleteSubcontractor(ctx, sub.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteSubcontractorReferencedByRequest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sub := mustSubcontractor(t, store, "Milton Bins", 43.5, -79.8)
	_, _, err := store.CreateServiceRequest(ctx, model.Customer{Name: "Jane"}, model.ServiceRequest{
		SubcontractorID:      sub.ID,
		BinSize:              20,
		ServiceType:          model.ServiceTypeRollOff,
		MaterialType:         model.MaterialTypeWaste,
		ScheduledStart:       time.Now(),
		AppliedRateStructure: model.RateStructure{FlatRate: model.Amount("450")},
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := store.DeleteSubcontractor(ctx, sub.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRateUpdateAndOrdering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sub := mustSubcontractor(t, store, "Milton Bins", 43.5, -79.8)
	older := mustRate(t, store, sub.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "400")
	newer := mustRate(t, store, sub.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "450")

	rates, err := store.ListRatesBySubcontractor(ctx, sub.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rates) != 2 || rates[0].ID != newer.ID || rates[1].ID != older.ID {
		t.Fatalf("expected newest effective date first, got %+v", rates)
	}

	older.BinSize = 30
	older.RateStructure = model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("85")}
	older.SubcontractorID = uuid.New()
	updated, err := store.UpdateRate(ctx, *older)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.BinSize != 30 || updated.RateStructure.FlatRate != nil || !updated.RateStructure.BaseRate.Equal(*model.Amount("300")) {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.SubcontractorID != sub.ID {
		t.Fatalf("update must not move the rate to another subcontractor")
	}

	missing := *older
	missing.ID = uuid.New()
	if _, err := store.UpdateRate(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRateUnknownSubcontractor(t *testing.T) {
	store := newTestStore(t)
	_, err := store.CreateRate(context.Background(), model.Rate{
		SubcontractorID: uuid.New(),
		BinSize:         20,
		ServiceType:     model.ServiceTypeRollOff,
		MaterialType:    model.MaterialTypeWaste,
		RateStructure:   model.RateStructure{FlatRate: model.Amount("1")},
		EffectiveDate:   time.Now(),
	})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateServiceRequestReusesCustomerByEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sub := mustSubcontractor(t, store, "Milton Bins", 43.5, -79.8)
	rate := mustRate(t, store, sub.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "450")

	req := model.ServiceRequest{
		SubcontractorID:      sub.ID,
		RateID:               &rate.ID,
		Address:              "1 Main St",
		BinSize:              20,
		ServiceType:          model.ServiceTypeRollOff,
		MaterialType:         model.MaterialTypeWaste,
		ScheduledStart:       time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC),
		AppliedRateStructure: rate.RateStructure,
	}

	first, reused, err := store.CreateServiceRequest(ctx, model.Customer{Name: "Jane", Email: strPtr("jane@example.com")}, req)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if reused {
		t.Fatalf("first request must create the customer")
	}

	second, reused, err := store.CreateServiceRequest(ctx, model.Customer{Name: "Jane D.", Email: strPtr("jane@example.com")}, req)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !reused || second.CustomerID != first.CustomerID {
		t.Fatalf("expected customer reuse, got reused=%v ids %s/%s", reused, first.CustomerID, second.CustomerID)
	}

	third, reused, err := store.CreateServiceRequest(ctx, model.Customer{Name: "Walk-in"}, req)
	if err != nil {
		t.Fatalf("third create: %v", err)
	}
	if reused || third.CustomerID == first.CustomerID {
		t.Fatalf("customer without email must always be created")
	}

	customers, err := store.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}

	byCustomer, err := store.ListServiceRequestsByCustomer(ctx, first.CustomerID)
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if len(byCustomer) != 2 {
		t.Fatalf("expected 2 requests for customer, got %d", len(byCustomer))
	}

	if _, err := store.CreateCustomer(ctx, model.Customer{Name: "Dup", Email: strPtr("jane@example.com")}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestDeleteRateKeepsAppliedStructure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	sub := mustSubcontractor(t, store, "Milton Bins", 43.5, -79.8)
	rate := mustRate(t, store, sub.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "450")

	created, _, err := store.CreateServiceRequest(ctx, model.Customer{Name: "Jane"}, model.ServiceRequest{
		SubcontractorID:      sub.ID,
		RateID:               &rate.ID,
		BinSize:              20,
		ServiceType:          model.ServiceTypeRollOff,
		MaterialType:         model.MaterialTypeWaste,
		ScheduledStart:       time.Now(),
		AppliedRateStructure: rate.RateStructure,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := store.DeleteRate(ctx, rate.ID); err != nil {
		t.Fatalf("delete rate: %v", err)
	}

	detail, err := store.GetServiceRequest(ctx, created.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if detail.RateID != nil {
		t.Fatalf("expected rate provenance to be cleared")
	}
	if detail.AppliedRateStructure.FlatRate == nil || !detail.AppliedRateStructure.FlatRate.Equal(*model.Amount("450")) {
		t.Fatalf("applied structure changed: %+v", detail.AppliedRateStructure)
	}
	if detail.Customer.Name != "Jane" || detail.Subcontractor.ID != sub.ID {
		t.Fatalf("detail parties not joined: %+v", detail)
	}
}
