package mission

import (
	"time"

	"github.com/google/uuid"
)

// MissionType classifies a distribution operation.
type MissionType string

const (
	MissionTypeEmergency   MissionType = "emergency"
	MissionTypeRegular     MissionType = "regular"
	MissionTypeSpecialized MissionType = "specialized"
)

// MissionStatus represents the lifecycle status of a mission record.
type MissionStatus string

const (
	// MissionStatusPending is the status every mission is created with.
	MissionStatusPending MissionStatus = "pending"
)

// Mission represents a planned humanitarian distribution operation.
// A mission gains its numeric identifier on creation and is afterwards
// mutable only by appending a vendor assignment and cargo records.
type Mission struct {
	ID                    uint          `gorm:"primaryKey;column:id" json:"id"`
	Title                 string        `gorm:"type:varchar(255);column:title;not null" json:"title"`
	Type                  MissionType   `gorm:"type:varchar(20);column:type;not null" json:"type"`
	NumberOfBeneficiaries int           `gorm:"column:number_of_beneficiaries;not null" json:"number_of_beneficiaries"`
	Description           string        `gorm:"type:text;column:description" json:"description"`
	DeptLocation          string        `gorm:"type:varchar(255);column:dept_location;not null" json:"dept_location"`
	DestinationLocation   string        `gorm:"type:varchar(255);column:destination_location;not null" json:"destination_location"`
	StartDate             string        `gorm:"type:varchar(10);column:start_date;not null" json:"start_date"` // YYYY-MM-DD
	EndDate               string        `gorm:"type:varchar(10);column:end_date;not null" json:"end_date"`     // YYYY-MM-DD
	Status                MissionStatus `gorm:"type:varchar(20);column:status;not null" json:"status"`
	CreatedAt             time.Time     `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
	UpdatedAt             time.Time     `gorm:"type:timestamptz;column:updated_at;not null" json:"updatedAt"`
}

func (m *Mission) TableName() string {
	return "missions"
}

// VendorAssignment binds a vendor (by numeric identifier) to a mission.
// It may only reference a mission that already has a server identifier.
type VendorAssignment struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	VendorID  uint      `gorm:"column:vendor;not null" json:"vendor"`
	MissionID uint      `gorm:"column:mission;not null" json:"mission"`
	CreatedAt time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`

	Mission *Mission `gorm:"foreignKey:MissionID;references:ID" json:"-"`
}

func (va *VendorAssignment) TableName() string {
	return "vendor_missions"
}

// Cargo is the container record scoped to exactly one mission, holding the
// aggregate quantity of all its line items.
type Cargo struct {
	ID                    uint      `gorm:"primaryKey;column:id" json:"id"`
	MissionID             uint      `gorm:"column:mission;not null" json:"mission"`
	TotalProductsQuantity int       `gorm:"column:total_products_quantity;not null" json:"total_products_quantity"`
	CreatedAt             time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`

	Mission *Mission `gorm:"foreignKey:MissionID;references:ID" json:"-"`
}

func (c *Cargo) TableName() string {
	return "cargo"
}

// CargoItem binds a product (by numeric identifier) and a quantity to a
// cargo container. It may only be created after its parent cargo exists.
type CargoItem struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	CargoID   uint      `gorm:"column:cargo;not null" json:"cargo"`
	ProductID uint      `gorm:"column:product;not null" json:"product"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`

	Cargo *Cargo `gorm:"foreignKey:CargoID;references:ID" json:"-"`
}

func (ci *CargoItem) TableName() string {
	return "cargo_items"
}

// ProvisionForm is the single underlying form model shared by both wizard
// stages. Each stage validates only its own field group.
type ProvisionForm struct {
	// Mission detail fields (stage 1)
	Title                 string      `json:"title"`
	Type                  MissionType `json:"type"`
	VendorPublicID        *uuid.UUID  `json:"vendorId,omitempty"` // optional vendor selection
	NumberOfBeneficiaries int         `json:"number_of_beneficiaries"`
	DeptLocation          string      `json:"dept_location"`
	DestinationLocation   string      `json:"destination_location"`
	StartDate             string      `json:"start_date"` // YYYY-MM-DD
	EndDate               string      `json:"end_date"`   // YYYY-MM-DD
	Description           string      `json:"description"`
	TermsAccepted         bool        `json:"termsAccepted"`

	// Cargo fields (stage 2)
	Items []CargoFormItem `json:"items"`
}

// CargoFormItem is one selected (product, quantity) pair in the cargo stage.
type CargoFormItem struct {
	ProductPublicID uuid.UUID `json:"productId"`
	Quantity        int       `json:"quantity"`
}

// TotalQuantity sums the quantities of all selected items. The total is the
// computed weight figure submitted with the cargo container.
func (f *ProvisionForm) TotalQuantity() int {
	total := 0
	for _, item := range f.Items {
		total += item.Quantity
	}
	return total
}
