package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor represents a supplier or logistics partner that can be assigned
// to a mission. Clients address vendors by PublicID; the numeric ID is the
// server identifier used by relationship records.
type Vendor struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	PublicID     uuid.UUID `gorm:"type:uuid;column:public_id;uniqueIndex;not null" json:"publicId"`
	Name         string    `gorm:"type:varchar(255);column:name;not null" json:"name"`
	ContactEmail string    `gorm:"type:varchar(255);column:contact_email" json:"contactEmail"`
	Phone        string    `gorm:"type:varchar(50);column:phone" json:"phone"`
	City         string    `gorm:"type:varchar(255);column:city" json:"city"`
}

func (v *Vendor) TableName() string {
	return "vendors"
}

// BeforeCreate is a GORM hook that assigns a public identifier when absent.
func (v *Vendor) BeforeCreate(tx *gorm.DB) (err error) {
	if v.PublicID == uuid.Nil {
		v.PublicID, err = uuid.NewRandom()
	}
	return
}

// Product represents a distributable good (food item) that can appear as a
// cargo line item.
type Product struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	PublicID     uuid.UUID `gorm:"type:uuid;column:public_id;uniqueIndex;not null" json:"publicId"`
	Name         string    `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Category     string    `gorm:"type:varchar(100);column:category" json:"category"`
	UnitWeightKg float64   `gorm:"column:unit_weight_kg" json:"unitWeightKg"`
}

func (p *Product) TableName() string {
	return "products"
}

// BeforeCreate is a GORM hook that assigns a public identifier when absent.
func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.PublicID == uuid.Nil {
		p.PublicID, err = uuid.NewRandom()
	}
	return
}
