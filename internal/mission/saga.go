package mission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Stage identifies a step of the provisioning workflow.
type Stage string

const (
	// StageMission collects mission details and creates the mission record
	// plus its optional vendor assignment.
	StageMission Stage = "mission"

	// StageCargo attaches the cargo container and its line items to an
	// already-created mission. It is the terminal stage.
	StageCargo Stage = "cargo"
)

// StageRedirectError signals a usage error: an operation was attempted in
// the wrong stage and the client must be sent back to the named stage.
type StageRedirectError struct {
	Redirect Stage
	Reason   string
}

func (e *StageRedirectError) Error() string {
	return fmt.Sprintf("redirect to stage %s: %s", e.Redirect, e.Reason)
}

// VendorAssignError reports that the mission record was created but the
// vendor could not be attached to it. The mission identifier stays valid;
// no compensating delete is ever issued.
type VendorAssignError struct {
	MissionID uint
	Err       error
}

func (e *VendorAssignError) Error() string {
	return fmt.Sprintf("mission %d created but vendor assignment failed: %v", e.MissionID, e.Err)
}

func (e *VendorAssignError) Unwrap() error { return e.Err }

// CargoItemError reports a failure while creating one line item. Items
// created before the failing one are kept; the remaining sequence is
// aborted.
type CargoItemError struct {
	CargoID         uint
	ProductPublicID uuid.UUID
	Index           int
	Err             error
}

func (e *CargoItemError) Error() string {
	return fmt.Sprintf("cargo %d: item %d (product %s) failed: %v", e.CargoID, e.Index, e.ProductPublicID, e.Err)
}

func (e *CargoItemError) Unwrap() error { return e.Err }

// Resolver maps public catalog identifiers to numeric server identifiers.
type Resolver interface {
	ResolveVendor(publicID uuid.UUID) (uint, error)
	ResolveProduct(publicID uuid.UUID) (uint, error)
}

// Saga orchestrates the mission provisioning workflow: a sequence of
// dependent creation calls (mission, then vendor assignment, then cargo and
// its items) with independent validation per stage and no compensating
// transactions. A failed step leaves every record created before it in
// place; recovery is an explicit resubmission.
//
// Stage transitions: mission -> cargo on full stage-1 success; cargo is
// terminal. There is no transition back from cargo other than building a
// fresh saga.
type Saga struct {
	repo     Repository
	resolver Resolver

	stage     Stage
	missionID *uint
	done      bool
}

// NewSaga starts a provisioning workflow at the mission stage.
func NewSaga(repo Repository, resolver Resolver) *Saga {
	return &Saga{
		repo:     repo,
		resolver: resolver,
		stage:    StageMission,
	}
}

// Resume rebuilds a saga at the cargo stage for an existing mission, for
// clients that re-enter the workflow after stage 1 has been persisted.
// An unknown mission identifier redirects back to the mission stage.
func Resume(ctx context.Context, repo Repository, resolver Resolver, missionID uint) (*Saga, error) {
	if _, err := repo.GetMission(ctx, missionID); err != nil {
		return nil, &StageRedirectError{
			Redirect: StageMission,
			Reason:   fmt.Sprintf("mission %d not found", missionID),
		}
	}

	id := missionID
	return &Saga{
		repo:      repo,
		resolver:  resolver,
		stage:     StageCargo,
		missionID: &id,
	}, nil
}

// Stage returns the currently active stage.
func (s *Saga) Stage() Stage { return s.stage }

// MissionID returns the captured mission identifier, or nil before the
// mission record has been created.
func (s *Saga) MissionID() *uint { return s.missionID }

// Done reports whether the workflow has finished.
func (s *Saga) Done() bool { return s.done }

// SubmitDetails runs stage 1: validate the mission-detail field group,
// create the mission, and attach the selected vendor if any.
//
// On vendor resolution or assignment failure the mission identifier is
// retained and a VendorAssignError is returned so the caller can surface a
// vendor-specific message; the stage does not advance and the mission is
// not deleted.
func (s *Saga) SubmitDetails(ctx context.Context, form *ProvisionForm) (*Mission, error) {
	if s.stage != StageMission {
		return nil, &StageRedirectError{
			Redirect: s.stage,
			Reason:   "mission details were already submitted",
		}
	}

	if verr := ValidateDetails(form); verr != nil {
		return nil, verr
	}

	m := &Mission{
		Title:                 form.Title,
		Type:                  form.Type,
		NumberOfBeneficiaries: form.NumberOfBeneficiaries,
		Description:           form.Description,
		DeptLocation:          form.DeptLocation,
		DestinationLocation:   form.DestinationLocation,
		StartDate:             form.StartDate,
		EndDate:               form.EndDate,
		Status:                MissionStatusPending,
	}

	if err := s.repo.CreateMission(ctx, m); err != nil {
		// Nothing was created; the stage stays on mission with the entered
		// values intact on the client side.
		return nil, fmt.Errorf("submit mission details: %w", err)
	}

	s.missionID = &m.ID
	slog.Info("mission created", "mission_id", m.ID, "type", m.Type)

	if form.VendorPublicID != nil {
		vendorID, err := s.resolver.ResolveVendor(*form.VendorPublicID)
		if err != nil {
			return m, &VendorAssignError{MissionID: m.ID, Err: err}
		}

		va := &VendorAssignment{VendorID: vendorID, MissionID: m.ID}
		if err := s.repo.CreateVendorAssignment(ctx, va); err != nil {
			return m, &VendorAssignError{MissionID: m.ID, Err: err}
		}
		slog.Info("vendor assigned to mission", "mission_id", m.ID, "vendor_id", vendorID)
	}

	s.stage = StageCargo
	return m, nil
}

// SubmitCargo runs stage 2: validate the cargo field group, create the
// cargo container, then create one item per selected product strictly in
// order, each awaited before the next is issued. The first item failure
// aborts the remainder; earlier items are kept.
func (s *Saga) SubmitCargo(ctx context.Context, form *ProvisionForm) (*Cargo, error) {
	if s.missionID == nil {
		return nil, &StageRedirectError{
			Redirect: StageMission,
			Reason:   "no mission has been created yet",
		}
	}
	if s.done {
		return nil, &StageRedirectError{
			Redirect: StageCargo,
			Reason:   "cargo was already submitted",
		}
	}

	if verr := ValidateCargo(form); verr != nil {
		return nil, verr
	}

	cargo := &Cargo{
		MissionID:             *s.missionID,
		TotalProductsQuantity: form.TotalQuantity(),
	}
	if err := s.repo.CreateCargo(ctx, cargo); err != nil {
		return nil, fmt.Errorf("submit cargo: %w", err)
	}
	slog.Info("cargo created", "mission_id", *s.missionID, "cargo_id", cargo.ID)

	for i, item := range form.Items {
		productID, err := s.resolver.ResolveProduct(item.ProductPublicID)
		if err != nil {
			return cargo, &CargoItemError{
				CargoID:         cargo.ID,
				ProductPublicID: item.ProductPublicID,
				Index:           i,
				Err:             err,
			}
		}

		ci := &CargoItem{
			CargoID:   cargo.ID,
			ProductID: productID,
			Quantity:  item.Quantity,
		}
		if err := s.repo.CreateCargoItem(ctx, ci); err != nil {
			return cargo, &CargoItemError{
				CargoID:         cargo.ID,
				ProductPublicID: item.ProductPublicID,
				Index:           i,
				Err:             err,
			}
		}
	}

	s.done = true
	slog.Info("mission provisioning completed",
		"mission_id", *s.missionID,
		"cargo_id", cargo.ID,
		"items", len(form.Items),
	)
	return cargo, nil
}
