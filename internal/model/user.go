package model

// User 用户表，对应 users
type User struct {
	UserID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName       string `gorm:"type:varchar(50);not null"                      json:"firstName"`
	LastName        string `gorm:"type:varchar(50);not null"                      json:"lastName"`
	Email           string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash    string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role            Role   `gorm:"type:varchar(20);not null;default:'client'"     json:"role"`
	PermissionLevel string `gorm:"type:varchar(50);not null;default:''"           json:"permissionLevel,omitempty"`
	Company         string `gorm:"type:varchar(200);not null;default:''"          json:"company,omitempty"`
	Phone           string `gorm:"type:varchar(20);not null;default:''"           json:"phone,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
