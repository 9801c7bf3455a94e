package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsumptionOverride is a saved usage estimate, scoped to one visitor.
type ConsumptionOverride struct {
	OwnerID   string    `gorm:"primaryKey;size:128"  json:"owner_id"`
	Key       string    `gorm:"primaryKey;size:255"  json:"key"`
	Value     string    `gorm:"not null"             json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConsumptionOverride) TableName() string {
	return "consumption_overrides"
}

type CartEntry struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"                       json:"id"`
	BaseSiteID             string    `gorm:"not null"                                   json:"base_site_id"`
	CartID                 string    `gorm:"uniqueIndex:idx_cart_entry_number;not null" json:"cart_id"`
	EntryNumber            int       `gorm:"uniqueIndex:idx_cart_entry_number;not null" json:"entry_number"`
	OwnerID                string    `gorm:"index;not null"                             json:"owner_id"`
	ProductCode            string    `gorm:"not null"                                   json:"product_code"`
	ProductSpecificationID string    `json:"product_specification_id"`
	ProcessType            string    `gorm:"not null;default:ACQUISITION"               json:"process_type"`
	ContractStartDate      string    `json:"contract_start_date,omitempty"`
	Quantity               uint      `gorm:"default:1;check:quantity>0"                 json:"quantity"`
	AppointmentID          string    `json:"appointment_id,omitempty"`
	UpdatedBy              string    `json:"updated_by,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	Characteristics []EntryCharacteristic `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"characteristics"`
	RelatedParties  []EntryRelatedParty   `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"related_parties"`
	Places          []EntryPlace          `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"places"`
}

func (e *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

type EntryCharacteristic struct {
	EntryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Name    string    `gorm:"primaryKey;size:128" json:"name"`
	Value   string    `gorm:"not null"            json:"value"`
}

func (EntryCharacteristic) TableName() string {
	return "cart_entry_characteristics"
}

type EntryRelatedParty struct {
	ID      uint      `gorm:"primaryKey"        json:"-"`
	EntryID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	PartyID string    `gorm:"not null"          json:"id"`
	Role    string    `gorm:"index;not null"    json:"role"`
}

func (EntryRelatedParty) TableName() string {
	return "cart_entry_related_parties"
}

type EntryPlace struct {
	ID      uint      `gorm:"primaryKey"     json:"-"`
	EntryID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	PlaceID string    `gorm:"not null"       json:"id"`
	Role    string    `gorm:"not null"       json:"role"`
}

func (EntryPlace) TableName() string {
	return "cart_entry_places"
}

// UsageBucket mirrors a balance bucket reported by the billing system.
type UsageBucket struct {
	ID             uint    `gorm:"primaryKey"      json:"id"`
	SubscriptionID string  `gorm:"index;not null"  json:"subscription_id"`
	ProductName    string  `gorm:"not null"        json:"product_name"`
	Unit           string  `json:"unit"`
	UsedValue      float64 `json:"used_value"`
	RemainingValue float64 `json:"remaining_value"`
}

func (UsageBucket) TableName() string {
	return "usage_buckets"
}

// All lists every table the service owns, in migration order.
func All() []any {
	return []any{
		&ConsumptionOverride{},
		&CartEntry{},
		&EntryCharacteristic{},
		&EntryRelatedParty{},
		&EntryPlace{},
		&UsageBucket{},
	}
}
