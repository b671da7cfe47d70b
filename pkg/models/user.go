package models

import (
	"time"

	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

// User is an admin-managed account. The password hash never leaves the
// server; read responses carry every other field.
type User struct {
	ID           int        `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash"`
	Role         enums.Role `json:"role" gorm:"column:role;not null"`
	CreatedDate  time.Time  `json:"createdDate" gorm:"column:created_date;autoCreateTime"`
	UpdatedDate  time.Time  `json:"updatedDate" gorm:"column:updated_date;autoUpdateTime"`
	CreatedBy    string     `json:"createdBy" gorm:"column:created_by"`
	UpdatedBy    string     `json:"updatedBy" gorm:"column:updated_by"`
}
