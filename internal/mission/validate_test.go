package mission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateDetailsAcceptsCompleteForm(t *testing.T) {
	assert.Nil(t, ValidateDetails(validDetailsForm()))
}

func TestValidateDetailsIgnoresCargoFields(t *testing.T) {
	// The cargo field group is in an arbitrary bad state: empty on one
	// form, a zero quantity on another. Neither blocks the mission stage.
	empty := validDetailsForm()
	empty.Items = nil
	assert.Nil(t, ValidateDetails(empty))

	zeroQty := validDetailsForm()
	zeroQty.Items = []CargoFormItem{{ProductPublicID: uuid.New(), Quantity: 0}}
	assert.Nil(t, ValidateDetails(zeroQty))
}

func TestValidateDetailsFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProvisionForm)
		field  string
	}{
		{"missing title", func(f *ProvisionForm) { f.Title = "  " }, "title"},
		{"missing type", func(f *ProvisionForm) { f.Type = "" }, "type"},
		{"unknown type", func(f *ProvisionForm) { f.Type = "airlift" }, "type"},
		{"zero beneficiaries", func(f *ProvisionForm) { f.NumberOfBeneficiaries = 0 }, "number_of_beneficiaries"},
		{"missing departure", func(f *ProvisionForm) { f.DeptLocation = "" }, "dept_location"},
		{"missing destination", func(f *ProvisionForm) { f.DestinationLocation = "" }, "destination_location"},
		{"bad start date", func(f *ProvisionForm) { f.StartDate = "01/09/2026" }, "start_date"},
		{"bad end date", func(f *ProvisionForm) { f.EndDate = "tomorrow" }, "end_date"},
		{"end before start", func(f *ProvisionForm) { f.StartDate = "2026-09-05"; f.EndDate = "2026-09-01" }, "end_date"},
		{"terms not accepted", func(f *ProvisionForm) { f.TermsAccepted = false }, "terms_accepted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validDetailsForm()
			tt.mutate(form)

			verr := ValidateDetails(form)
			assert.NotNil(t, verr)
			assert.Equal(t, StageMission, verr.Stage)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateCargo(t *testing.T) {
	productID := uuid.New()

	t.Run("valid items", func(t *testing.T) {
		form := &ProvisionForm{Items: []CargoFormItem{
			{ProductPublicID: productID, Quantity: 3},
		}}
		assert.Nil(t, ValidateCargo(form))
	})

	t.Run("no items", func(t *testing.T) {
		verr := ValidateCargo(&ProvisionForm{})
		assert.NotNil(t, verr)
		assert.Equal(t, StageCargo, verr.Stage)
		assert.Contains(t, verr.Fields, "items")
	})

	t.Run("zero quantity", func(t *testing.T) {
		form := &ProvisionForm{Items: []CargoFormItem{
			{ProductPublicID: productID, Quantity: 3},
			{ProductPublicID: uuid.New(), Quantity: 0},
		}}
		verr := ValidateCargo(form)
		assert.NotNil(t, verr)
		assert.Contains(t, verr.Fields, "items[1].quantity")
	})

	t.Run("cargo validation ignores detail fields", func(t *testing.T) {
		form := &ProvisionForm{
			Title: "", TermsAccepted: false,
			Items: []CargoFormItem{{ProductPublicID: productID, Quantity: 1}},
		}
		assert.Nil(t, ValidateCargo(form))
	})
}
