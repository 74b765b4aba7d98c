package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentKind classifies a shipping document.
type DocumentKind string

const (
	KindWaybill  DocumentKind = "waybill"
	KindManifest DocumentKind = "manifest"
	KindCustoms  DocumentKind = "customs"
	KindPhoto    DocumentKind = "photo"
	KindOther    DocumentKind = "other"
)

// Document is a shipping document attached to one mission. The binary
// lives in the storage driver under Key; this record carries the
// metadata.
type Document struct {
	ID        uint         `gorm:"primaryKey;column:id" json:"id"`
	PublicID  uuid.UUID    `gorm:"type:uuid;column:public_id;uniqueIndex;not null" json:"publicId"`
	MissionID uint         `gorm:"column:mission;not null;index" json:"mission"`
	Name      string       `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Kind      DocumentKind `gorm:"type:varchar(20);column:kind;not null" json:"kind"`
	Key       string       `gorm:"type:varchar(255);column:key;uniqueIndex;not null" json:"-"`
	URL       string       `gorm:"type:text;column:url" json:"url"`
	Size      int64        `gorm:"column:size;not null" json:"size"`
	MimeType  string       `gorm:"type:varchar(100);column:mime_type;not null" json:"mimeType"`
	CreatedAt time.Time    `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
}

func (d *Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	if d.PublicID == uuid.Nil {
		d.PublicID = uuid.New()
	}
	return nil
}
