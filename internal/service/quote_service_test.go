package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/renoquote/backend/internal/catalog"
	"github.com/renoquote/backend/internal/model"
	"github.com/renoquote/backend/internal/pricing"
	"github.com/renoquote/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockSnapshotLoader struct {
	loadFunc func(ctx context.Context, filter repository.RateFilter) (*catalog.Snapshot, error)
}

func (m *mockSnapshotLoader) Load(ctx context.Context, filter repository.RateFilter) (*catalog.Snapshot, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filter)
	}
	return testSnapshot(), nil
}

type mockQuoteRepository struct {
	createFunc  func(ctx context.Context, quote *model.Quote) error
	getByIDFunc func(ctx context.Context, id string) (*model.Quote, error)
}

func (m *mockQuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, quote)
	}
	quote.ID = "11111111-2222-3333-4444-555555555555"
	quote.CreatedAt = time.Now()
	return nil
}

func (m *mockQuoteRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

type recordedDrift struct {
	events []model.RateDrift
}

func (r *recordedDrift) RecordDrift(_ context.Context, d model.RateDrift) {
	r.events = append(r.events, d)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func testSnapshot() *catalog.Snapshot {
	lines := []*model.RateLine{
		{Code: pricing.CodeWalkInRecess, Name: "Walk-in recess", BasePrice: dec("3100"), Unit: model.RateUnitUnit, Active: true},
		{Code: pricing.CodeFloorTile, Name: "Floor tile", BasePrice: dec("150"), PricePerUnit: dec("18.50"), Unit: model.RateUnitSqft, Active: true},
		{Code: pricing.CodeShowerFloor, Name: "Shower floor", BasePrice: dec("200"), PricePerUnit: dec("32"), Unit: model.RateUnitSqft, Active: true},
		{Code: pricing.CodeWetWall, Name: "Wet wall", BasePrice: dec("250"), PricePerUnit: dec("24"), Unit: model.RateUnitSqft, Active: true},
		{Code: pricing.CodeHeatedFloors, Name: "Heated floors", BasePrice: dec("900"), Unit: model.RateUnitUnit, Active: false},
		{Code: pricing.CodeAsbestosTesting, Name: "Asbestos testing", BasePrice: dec("650"), Unit: model.RateUnitUnit, Active: true},
	}
	rates := make(model.RateCatalog, len(lines))
	for _, l := range lines {
		rates[l.Code] = l
	}
	return &catalog.Snapshot{
		Rates: rates,
		Multipliers: model.ProjectMultipliers{
			ContingencyRate:   dec("0.10"),
			PMFeeRate:         dec("0.08"),
			CondoUpliftRate:   dec("0.12"),
			OldHomeUpliftRate: dec("0.15"),
		},
	}
}

func validForm() *model.QuoteFormData {
	return &model.QuoteFormData{
		BathroomType:    model.BathroomWalkIn,
		BuildingType:    model.BuildingCondo,
		YearBuilt:       model.YearBuiltPre1980,
		FloorSqft:       decPtr("40"),
		ShowerFloorSqft: decPtr("12"),
		WetWallSqft:     decPtr("60"),
		Upgrades:        model.Upgrades{HeatedFloors: boolPtr(true)},
	}
}

// ---------------------------------------------------------------------------
// Calculate
// ---------------------------------------------------------------------------

func TestQuoteService_Calculate_ScopesCatalogToMappedCodes(t *testing.T) {
	var gotCodes []string
	loader := &mockSnapshotLoader{
		loadFunc: func(_ context.Context, filter repository.RateFilter) (*catalog.Snapshot, error) {
			gotCodes = filter.Codes
			return testSnapshot(), nil
		},
	}
	svc := NewQuoteService(loader, &mockQuoteRepository{}, &recordedDrift{})

	if _, err := svc.Calculate(context.Background(), validForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		pricing.CodeWalkInRecess, pricing.CodeFloorTile, pricing.CodeShowerFloor,
		pricing.CodeWetWall, pricing.CodeHeatedFloors, pricing.CodeAsbestosTesting,
	}
	if len(gotCodes) != len(want) {
		t.Fatalf("expected codes %v, got %v", want, gotCodes)
	}
	for i := range want {
		if gotCodes[i] != want[i] {
			t.Errorf("code[%d]: expected %s, got %s", i, want[i], gotCodes[i])
		}
	}
}

func TestQuoteService_Calculate_RecordsDriftAndExcludesLine(t *testing.T) {
	drift := &recordedDrift{}
	svc := NewQuoteService(&mockSnapshotLoader{}, &mockQuoteRepository{}, drift)

	result, err := svc.Calculate(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drift.events) != 1 || drift.events[0].Code != pricing.CodeHeatedFloors {
		t.Fatalf("expected one drift event for HEATED-FLR, got %+v", drift.events)
	}
	for _, it := range result.LineItems {
		if it.LineCode == pricing.CodeHeatedFloors {
			t.Error("inactive rate must not be priced")
		}
	}
	if len(result.LineItems) != 5 {
		t.Errorf("expected 5 line items, got %d", len(result.LineItems))
	}
	// 3100 + 890 + 584 + 1690 + 650
	if got := result.Totals.LabourSubtotal.StringFixed(2); got != "6914.00" {
		t.Errorf("expected labour_subtotal=6914.00, got %s", got)
	}
	sum := result.Totals.LabourSubtotal.Add(result.Totals.Contingency).Add(result.Totals.PMFee).
		Add(result.Totals.CondoUplift).Add(result.Totals.OldHomeUplift)
	if !sum.Equal(result.Totals.GrandTotal) {
		t.Errorf("components %s do not sum to grand total %s", sum, result.Totals.GrandTotal)
	}
}

func TestQuoteService_Calculate_InvalidForm(t *testing.T) {
	called := false
	loader := &mockSnapshotLoader{
		loadFunc: func(_ context.Context, _ repository.RateFilter) (*catalog.Snapshot, error) {
			called = true
			return testSnapshot(), nil
		},
	}
	svc := NewQuoteService(loader, &mockQuoteRepository{}, &recordedDrift{})

	form := validForm()
	form.BathroomType = "hot_tub"
	form.FloorSqft = decPtr("-4")

	_, err := svc.Calculate(context.Background(), form)
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	fields := map[string]string{}
	for _, v := range verr.Violations {
		fields[v.Field] = v.Rule
	}
	if fields["bathroom_type"] != "oneof" {
		t.Errorf("expected bathroom_type oneof violation, got %v", fields)
	}
	if fields["floor_sqft"] != "gte" {
		t.Errorf("expected floor_sqft gte violation, got %v", fields)
	}
	if called {
		t.Error("catalog must not be loaded for an invalid form")
	}
}

func TestQuoteService_Calculate_MissingRequiredFields(t *testing.T) {
	svc := NewQuoteService(&mockSnapshotLoader{}, &mockQuoteRepository{}, &recordedDrift{})

	_, err := svc.Calculate(context.Background(), &model.QuoteFormData{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 3 {
		t.Errorf("expected 3 violations, got %+v", verr.Violations)
	}
}

func TestQuoteService_Calculate_NilForm(t *testing.T) {
	svc := NewQuoteService(&mockSnapshotLoader{}, &mockQuoteRepository{}, &recordedDrift{})
	_, err := svc.Calculate(context.Background(), nil)
	if !errors.Is(err, ErrInvalidForm) {
		t.Errorf("expected ErrInvalidForm, got %v", err)
	}
}

func TestQuoteService_Calculate_CatalogUnavailable(t *testing.T) {
	loader := &mockSnapshotLoader{
		loadFunc: func(_ context.Context, _ repository.RateFilter) (*catalog.Snapshot, error) {
			return nil, catalog.ErrCatalogUnavailable
		},
	}
	svc := NewQuoteService(loader, &mockQuoteRepository{}, &recordedDrift{})

	result, err := svc.Calculate(context.Background(), validForm())
	if !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if result != nil {
		t.Error("no partial result may be returned")
	}
	if !IsRetryable(err) {
		t.Error("catalog failures are retryable")
	}
}

// ---------------------------------------------------------------------------
// Submit / Get
// ---------------------------------------------------------------------------

func TestQuoteService_Submit_PersistsPricedQuote(t *testing.T) {
	var stored *model.Quote
	repo := &mockQuoteRepository{
		createFunc: func(_ context.Context, q *model.Quote) error {
			q.ID = "q-1"
			stored = q
			return nil
		},
	}
	svc := NewQuoteService(&mockSnapshotLoader{}, repo, &recordedDrift{})

	sub := &model.QuoteSubmission{
		Customer: model.Customer{Name: "Jordan Lee", Email: "jordan@example.com"},
		Form:     *validForm(),
	}
	q, err := svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID != "q-1" || stored == nil {
		t.Fatalf("expected stored quote q-1, got %+v", q)
	}
	if len(stored.LineItems) != 5 {
		t.Errorf("expected 5 stored line items, got %d", len(stored.LineItems))
	}
	if stored.Totals.GrandTotal.IsZero() {
		t.Error("expected a priced grand total")
	}
}

func TestQuoteService_Submit_InvalidCustomer(t *testing.T) {
	created := false
	repo := &mockQuoteRepository{
		createFunc: func(_ context.Context, _ *model.Quote) error {
			created = true
			return nil
		},
	}
	svc := NewQuoteService(&mockSnapshotLoader{}, repo, &recordedDrift{})

	sub := &model.QuoteSubmission{
		Customer: model.Customer{Name: "Jordan", Email: "not-an-email"},
		Form:     *validForm(),
	}
	_, err := svc.Submit(context.Background(), sub)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "customer.email" {
		t.Errorf("expected customer.email violation, got %+v", verr.Violations)
	}
	if created {
		t.Error("invalid submissions must not be stored")
	}
}

func TestQuoteService_Submit_RepositoryError(t *testing.T) {
	repo := &mockQuoteRepository{
		createFunc: func(_ context.Context, _ *model.Quote) error {
			return errors.New("db error")
		},
	}
	svc := NewQuoteService(&mockSnapshotLoader{}, repo, &recordedDrift{})

	sub := &model.QuoteSubmission{
		Customer: model.Customer{Name: "Jordan", Email: "jordan@example.com"},
		Form:     *validForm(),
	}
	if _, err := svc.Submit(context.Background(), sub); err == nil {
		t.Error("expected error")
	}
}

func TestQuoteService_Get_NotFound(t *testing.T) {
	svc := NewQuoteService(&mockSnapshotLoader{}, &mockQuoteRepository{}, &recordedDrift{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = svc.Get(context.Background(), "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestQuoteService_Submit_RejectsMeasurementsFinerThanCents(t *testing.T) {
	created := false
	repo := &mockQuoteRepository{
		createFunc: func(_ context.Context, _ *model.Quote) error {
			created = true
			return nil
		},
	}
	svc := NewQuoteService(&mockSnapshotLoader{}, repo, &recordedDrift{})

	form := validForm()
	form.FloorSqft = decPtr("12.333")
	sub := &model.QuoteSubmission{
		Customer: model.Customer{Name: "Jordan", Email: "jordan@example.com"},
		Form:     *form,
	}

	_, err := svc.Submit(context.Background(), sub)
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "form.floor_sqft" || verr.Violations[0].Rule != "maxdp2" {
		t.Errorf("expected form.floor_sqft maxdp2 violation, got %+v", verr.Violations)
	}
	if created {
		t.Error("a quantity the store would round must not be persisted")
	}
}

func TestQuoteService_Submit_StoredLinesReproduceExtended(t *testing.T) {
	var stored *model.Quote
	repo := &mockQuoteRepository{
		createFunc: func(_ context.Context, q *model.Quote) error {
			stored = q
			return nil
		},
	}
	svc := NewQuoteService(&mockSnapshotLoader{}, repo, &recordedDrift{})

	form := validForm()
	form.FloorSqft = decPtr("12.33")
	sub := &model.QuoteSubmission{
		Customer: model.Customer{Name: "Jordan", Email: "jordan@example.com"},
		Form:     *form,
	}
	if _, err := svc.Submit(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, it := range stored.LineItems {
		// Quantities are persisted at two decimal places.
		qty := it.Quantity.Round(2)
		if !qty.Equal(it.Quantity) {
			t.Errorf("%s: quantity %s would be rounded by the store", it.LineCode, it.Quantity)
		}
		want := it.BasePrice.Add(it.UnitPrice.Mul(qty)).Round(2)
		if !want.Equal(it.Extended) {
			t.Errorf("%s: extended %s does not match stored quantity (want %s)", it.LineCode, it.Extended, want)
		}
	}
}

func TestQuoteService_Calculate_AcceptsTwoDecimalMeasurements(t *testing.T) {
	svc := NewQuoteService(&mockSnapshotLoader{}, &mockQuoteRepository{}, &recordedDrift{})

	form := validForm()
	form.WetWallSqft = decPtr("60.25")
	result, err := svc.Calculate(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range result.Quantities {
		if q.Code == pricing.CodeWetWall && q.Quantity.String() != "60.25" {
			t.Errorf("expected WET-WALL 60.25, got %s", q.Quantity)
		}
	}
}
