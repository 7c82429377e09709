package model

import (
	"time"

	"gorm.io/datatypes"
)

// TempWork 临时施工申请表，对应 temp_works
type TempWork struct {
	TempWorkID       string                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID         string                      `gorm:"type:uuid;not null;index"                       json:"client"`
	WorkType         WorkType                    `gorm:"type:varchar(20);not null"                      json:"workType"`
	Location         string                      `gorm:"type:varchar(200);not null"                     json:"location"`
	StartDate        time.Time                   `gorm:"not null"                                       json:"startDate"`
	EndDate          time.Time                   `gorm:"not null"                                       json:"endDate"`
	Description      string                      `gorm:"type:text;not null"                             json:"description"`
	Status           TempWorkStatus              `gorm:"type:varchar(10);not null;default:'待审核'"        json:"status"`
	ApprovedBy       *string                     `gorm:"type:uuid"                                      json:"approvedBy,omitempty"`
	ApprovalComments string                      `gorm:"type:text;not null;default:''"                  json:"approvalComments,omitempty"`
	Workers          datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"               json:"workers"`
	VersionedModel
}

// TableName 指定表名
func (TempWork) TableName() string { return "temp_works" }
