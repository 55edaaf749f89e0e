package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ordering keys accepted by the catalog listing. Anything else falls
// back to OrderingName.
const (
	OrderingName      = "name"
	OrderingNameDesc  = "name_desc"
	OrderingPriceAsc  = "price_asc"
	OrderingPriceDesc = "price_desc"
)

// Phone represents a phone in the catalog
// Table: phones
// Name is the upsert key for bulk imports but is intentionally not
// declared unique; Slug is unique and assigned exactly once, at first
// persistence, from Name at that time
// Price is stored with 2 decimal places, up to 10 digits total
// Timestamps default to UTC at DB level
type Phone struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_phones_uuid" json:"uuid"`
	Name        string          `gorm:"size:255;not null;index:idx_phones_name" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:2048;not null" json:"image"`
	ReleaseDate time.Time       `gorm:"type:date;not null" json:"release_date"`
	LTEExists   *bool           `gorm:"default:false" json:"lte_exists"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex:uk_phones_slug" json:"slug"`
	CreatedAt   time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_phones_created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Phone) TableName() string { return "phones" }

// PhoneFilter represents filter criteria for phone queries
type PhoneFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Name          *string
	Slug          *string
	LTEExists     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// OrderingClause maps a caller-supplied ordering key to a SQL order
// clause. The second return value is the key that was actually
// applied, so callers can echo it back.
func OrderingClause(key string) (string, string) {
	switch key {
	case OrderingNameDesc:
		return "name DESC", OrderingNameDesc
	case OrderingPriceAsc:
		return "price ASC", OrderingPriceAsc
	case OrderingPriceDesc:
		return "price DESC", OrderingPriceDesc
	default:
		return "name ASC", OrderingName
	}
}
