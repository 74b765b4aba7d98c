package mission

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FieldErrors maps form field names to their validation message.
type FieldErrors map[string]string

// ValidationError carries per-field errors for one wizard stage. The field
// keys let clients attach each message to its form control.
type ValidationError struct {
	Stage  Stage
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed for stage %s: %s", e.Stage, strings.Join(fields, ", "))
}

// ValidateDetails checks exactly the mission-detail field group. Cargo
// fields on the same form are never inspected, so their state can not
// block the mission stage.
func ValidateDetails(form *ProvisionForm) *ValidationError {
	fields := FieldErrors{}

	if strings.TrimSpace(form.Title) == "" {
		fields["title"] = "title is required"
	}

	switch form.Type {
	case MissionTypeEmergency, MissionTypeRegular, MissionTypeSpecialized:
	case "":
		fields["type"] = "type is required"
	default:
		fields["type"] = fmt.Sprintf("type must be one of %s, %s, %s",
			MissionTypeEmergency, MissionTypeRegular, MissionTypeSpecialized)
	}

	if form.NumberOfBeneficiaries <= 0 {
		fields["number_of_beneficiaries"] = "number of beneficiaries must be positive"
	}

	if strings.TrimSpace(form.DeptLocation) == "" {
		fields["dept_location"] = "departure location is required"
	}
	if strings.TrimSpace(form.DestinationLocation) == "" {
		fields["destination_location"] = "destination location is required"
	}

	start, startErr := time.Parse(dateLayout, form.StartDate)
	if startErr != nil {
		fields["start_date"] = "start date must be formatted YYYY-MM-DD"
	}
	end, endErr := time.Parse(dateLayout, form.EndDate)
	if endErr != nil {
		fields["end_date"] = "end date must be formatted YYYY-MM-DD"
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		fields["end_date"] = "end date must not be before start date"
	}

	if !form.TermsAccepted {
		fields["terms_accepted"] = "terms must be accepted"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Stage: StageMission, Fields: fields}
}

// ValidateCargo checks exactly the cargo field group.
func ValidateCargo(form *ProvisionForm) *ValidationError {
	fields := FieldErrors{}

	if len(form.Items) == 0 {
		fields["items"] = "at least one product must be selected"
	}

	for i, item := range form.Items {
		if item.Quantity <= 0 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be positive"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Stage: StageCargo, Fields: fields}
}
