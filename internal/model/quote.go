package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuoteItem 报价明细，TotalPrice 由 quantity × unitPrice 派生
type QuoteItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Quote 报价表，对应 quotes
type Quote struct {
	QuoteID     string                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID    string                         `gorm:"type:uuid;not null;index"                       json:"clientId"`
	Title       string                         `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string                         `gorm:"type:varchar(1000);not null;default:''"         json:"description,omitempty"`
	Amount      float64                        `gorm:"type:numeric(14,2);not null"                    json:"amount"`
	ValidUntil  time.Time                      `gorm:"not null"                                       json:"validUntil"`
	Status      QuoteStatus                    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	StatusText  string                         `gorm:"type:varchar(20);not null"                      json:"statusText"`
	ConfirmedAt *time.Time                     `                                                      json:"confirmedAt,omitempty"`
	ProjectID   *string                        `gorm:"type:uuid"                                      json:"projectId,omitempty"`
	Items       datatypes.JSONSlice[QuoteItem] `gorm:"type:jsonb;not null;default:'[]'"               json:"items"`
	Notes       string                         `gorm:"type:varchar(500);not null;default:''"          json:"notes,omitempty"`
	CreatedBy   string                         `gorm:"type:uuid;not null;<-:create"                   json:"createdBy"`
	VersionedModel
}

// TableName 指定表名
func (Quote) TableName() string { return "quotes" }
