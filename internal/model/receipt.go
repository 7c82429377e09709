package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReceiptItem 收据明细，Subtotal 由 quantity × unitPrice 派生
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// Receipt 收据表，对应 receipts
type Receipt struct {
	ReceiptID     string                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ReceiptNumber string                           `gorm:"type:varchar(32);not null;<-:create"            json:"receiptNumber"`
	ClientID      string                           `gorm:"type:uuid;not null;index"                       json:"client"`
	ProjectID     *string                          `gorm:"type:uuid"                                      json:"project,omitempty"`
	Amount        float64                          `gorm:"type:numeric(14,2);not null"                    json:"amount"`
	PaymentMethod PaymentMethod                    `gorm:"type:varchar(20);not null"                      json:"paymentMethod"`
	PaymentDate   time.Time                        `gorm:"not null"                                       json:"paymentDate"`
	Description   string                           `gorm:"type:text;not null"                             json:"description"`
	Items         datatypes.JSONSlice[ReceiptItem] `gorm:"type:jsonb;not null;default:'[]'"               json:"items"`
	TaxRate       float64                          `gorm:"type:numeric(5,2);not null;default:0"           json:"taxRate"`
	TaxAmount     float64                          `gorm:"type:numeric(14,2);not null;default:0"          json:"taxAmount"`
	TotalAmount   float64                          `gorm:"type:numeric(14,2);not null"                    json:"totalAmount"`
	Notes         string                           `gorm:"type:text;not null;default:''"                  json:"notes,omitempty"`
	CreatedBy     string                           `gorm:"type:uuid;not null;<-:create"                   json:"createdBy"`
	VersionedModel
}

// TableName 指定表名
func (Receipt) TableName() string { return "receipts" }
