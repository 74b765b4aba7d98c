package mission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeRepository records every creation call in order so tests can assert
// on the exact call sequence the saga issues.
type fakeRepository struct {
	calls []string

	nextMissionID uint
	nextCargoID   uint

	missions map[uint]*Mission
	cargo    map[uint]*Cargo
	items    []CargoItem

	failCreateMission    error
	failCreateAssignment error
	failCreateCargo      error
	failItemAtIndex      int // 1-based index of the item call to fail; 0 disables
	failItemErr          error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextMissionID: 100,
		nextCargoID:   500,
		missions:      map[uint]*Mission{},
		cargo:         map[uint]*Cargo{},
	}
}

func (f *fakeRepository) CreateMission(ctx context.Context, m *Mission) error {
	f.calls = append(f.calls, "mission")
	if f.failCreateMission != nil {
		return f.failCreateMission
	}
	f.nextMissionID++
	m.ID = f.nextMissionID
	f.missions[m.ID] = m
	return nil
}

func (f *fakeRepository) CreateVendorAssignment(ctx context.Context, va *VendorAssignment) error {
	f.calls = append(f.calls, fmt.Sprintf("assign-vendor:%d", va.VendorID))
	if f.failCreateAssignment != nil {
		return f.failCreateAssignment
	}
	return nil
}

func (f *fakeRepository) CreateCargo(ctx context.Context, c *Cargo) error {
	f.calls = append(f.calls, "cargo")
	if f.failCreateCargo != nil {
		return f.failCreateCargo
	}
	f.nextCargoID++
	c.ID = f.nextCargoID
	f.cargo[c.ID] = c
	return nil
}

func (f *fakeRepository) CreateCargoItem(ctx context.Context, ci *CargoItem) error {
	f.calls = append(f.calls, fmt.Sprintf("item:%d", ci.ProductID))
	itemIndex := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, "item:") {
			itemIndex++
		}
	}
	if f.failItemAtIndex != 0 && itemIndex == f.failItemAtIndex {
		return f.failItemErr
	}
	f.items = append(f.items, *ci)
	return nil
}

func (f *fakeRepository) GetMission(ctx context.Context, id uint) (*Mission, error) {
	m, ok := f.missions[id]
	if !ok {
		return nil, fmt.Errorf("mission %d: %w", id, ErrMissionNotFound)
	}
	return m, nil
}

func (f *fakeRepository) GetCargo(ctx context.Context, id uint) (*Cargo, error) {
	c, ok := f.cargo[id]
	if !ok {
		return nil, fmt.Errorf("cargo %d: %w", id, ErrCargoNotFound)
	}
	return c, nil
}

// stubResolver resolves from fixed maps.
type stubResolver struct {
	vendors  map[uuid.UUID]uint
	products map[uuid.UUID]uint
}

var errNotInCatalog = errors.New("not found in catalog")

func (s *stubResolver) ResolveVendor(publicID uuid.UUID) (uint, error) {
	id, ok := s.vendors[publicID]
	if !ok {
		return 0, errNotInCatalog
	}
	return id, nil
}

func (s *stubResolver) ResolveProduct(publicID uuid.UUID) (uint, error) {
	id, ok := s.products[publicID]
	if !ok {
		return 0, errNotInCatalog
	}
	return id, nil
}

func validDetailsForm() *ProvisionForm {
	return &ProvisionForm{
		Title:                 "Flood relief convoy",
		Type:                  MissionTypeEmergency,
		NumberOfBeneficiaries: 1200,
		DeptLocation:          "Warehouse North",
		DestinationLocation:   "River District",
		StartDate:             "2026-09-01",
		EndDate:               "2026-09-05",
		Description:           "Staple food distribution after flooding",
		TermsAccepted:         true,
	}
}

func TestSubmitDetailsCreatesMissionAndAdvances(t *testing.T) {
	repo := newFakeRepository()
	vendorPublic := uuid.New()
	resolver := &stubResolver{vendors: map[uuid.UUID]uint{vendorPublic: 42}}

	form := validDetailsForm()
	form.VendorPublicID = &vendorPublic

	saga := NewSaga(repo, resolver)
	m, err := saga.SubmitDetails(context.Background(), form)

	assert.NoError(t, err)
	assert.NotNil(t, m)
	assert.NotZero(t, m.ID)
	assert.Equal(t, MissionStatusPending, m.Status)
	assert.Equal(t, StageCargo, saga.Stage())
	assert.Equal(t, []string{"mission", "assign-vendor:42"}, repo.calls)
}

func TestSubmitDetailsWithoutVendorSkipsAssignment(t *testing.T) {
	repo := newFakeRepository()
	saga := NewSaga(repo, &stubResolver{})

	m, err := saga.SubmitDetails(context.Background(), validDetailsForm())

	assert.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, []string{"mission"}, repo.calls)
	assert.Equal(t, StageCargo, saga.Stage())
}

func TestVendorResolutionFailureKeepsMission(t *testing.T) {
	repo := newFakeRepository()
	resolver := &stubResolver{vendors: map[uuid.UUID]uint{}}

	unknownVendor := uuid.New()
	form := validDetailsForm()
	form.VendorPublicID = &unknownVendor

	saga := NewSaga(repo, resolver)
	m, err := saga.SubmitDetails(context.Background(), form)

	// The mission record was created and its identifier is retained.
	assert.NotNil(t, m)
	assert.NotZero(t, m.ID)
	assert.NotNil(t, saga.MissionID())
	assert.Equal(t, m.ID, *saga.MissionID())

	// The error is vendor-specific, not a generic failure.
	var vendorErr *VendorAssignError
	assert.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, m.ID, vendorErr.MissionID)
	assert.ErrorIs(t, err, errNotInCatalog)

	// The stage did not advance.
	assert.Equal(t, StageMission, saga.Stage())
}

func TestSubmitCargoWithoutMissionRedirects(t *testing.T) {
	repo := newFakeRepository()
	productPublic := uuid.New()
	resolver := &stubResolver{products: map[uuid.UUID]uint{productPublic: 7}}

	saga := NewSaga(repo, resolver)

	// Cargo fields are perfectly valid; the redirect happens regardless.
	form := &ProvisionForm{
		Items: []CargoFormItem{{ProductPublicID: productPublic, Quantity: 5}},
	}
	cargo, err := saga.SubmitCargo(context.Background(), form)

	assert.Nil(t, cargo)
	var redirect *StageRedirectError
	assert.ErrorAs(t, err, &redirect)
	assert.Equal(t, StageMission, redirect.Redirect)
	assert.Empty(t, repo.calls)
}

func TestSubmitCargoIssuesSequentialItemCalls(t *testing.T) {
	repo := newFakeRepository()
	p1 := uuid.New()
	p2 := uuid.New()
	resolver := &stubResolver{products: map[uuid.UUID]uint{p1: 11, p2: 22}}

	saga := NewSaga(repo, resolver)
	_, err := saga.SubmitDetails(context.Background(), validDetailsForm())
	assert.NoError(t, err)

	form := &ProvisionForm{
		Items: []CargoFormItem{
			{ProductPublicID: p1, Quantity: 2},
			{ProductPublicID: p2, Quantity: 3},
		},
	}
	cargo, err := saga.SubmitCargo(context.Background(), form)

	assert.NoError(t, err)
	assert.NotNil(t, cargo)
	assert.Equal(t, 5, cargo.TotalProductsQuantity)
	assert.True(t, saga.Done())

	// Exactly one cargo call followed by exactly two item calls, P1 before
	// P2, each awaited before the next was issued.
	assert.Equal(t, []string{"mission", "cargo", "item:11", "item:22"}, repo.calls)
}

func TestSubmitCargoAbortsOnFirstItemFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.failItemAtIndex = 2
	repo.failItemErr = errors.New("backend unavailable")

	p1 := uuid.New()
	p2 := uuid.New()
	p3 := uuid.New()
	resolver := &stubResolver{products: map[uuid.UUID]uint{p1: 1, p2: 2, p3: 3}}

	saga := NewSaga(repo, resolver)
	_, err := saga.SubmitDetails(context.Background(), validDetailsForm())
	assert.NoError(t, err)

	form := &ProvisionForm{
		Items: []CargoFormItem{
			{ProductPublicID: p1, Quantity: 1},
			{ProductPublicID: p2, Quantity: 1},
			{ProductPublicID: p3, Quantity: 1},
		},
	}
	cargo, err := saga.SubmitCargo(context.Background(), form)

	// The container and the first item survive; the third item is never
	// attempted.
	assert.NotNil(t, cargo)
	var itemErr *CargoItemError
	assert.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.Equal(t, p2, itemErr.ProductPublicID)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{"mission", "cargo", "item:1", "item:2"}, repo.calls)
	assert.False(t, saga.Done())
}

func TestResumeWithUnknownMissionRedirects(t *testing.T) {
	repo := newFakeRepository()

	_, err := Resume(context.Background(), repo, &stubResolver{}, 999)

	var redirect *StageRedirectError
	assert.ErrorAs(t, err, &redirect)
	assert.Equal(t, StageMission, redirect.Redirect)
}

func TestResumeWithExistingMissionEntersCargoStage(t *testing.T) {
	repo := newFakeRepository()
	saga1 := NewSaga(repo, &stubResolver{})
	m, err := saga1.SubmitDetails(context.Background(), validDetailsForm())
	assert.NoError(t, err)

	saga2, err := Resume(context.Background(), repo, &stubResolver{}, m.ID)
	assert.NoError(t, err)
	assert.Equal(t, StageCargo, saga2.Stage())
	assert.Equal(t, m.ID, *saga2.MissionID())
}
