package models

import "gorm.io/datatypes"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an employee account, or the administrator seeded on first startup.
// The password is stored however the active credential scheme produced it and
// is never serialized into API responses.
type User struct {
	Base
	Login       string            `gorm:"size:255;index" json:"login"`
	Password    string            `gorm:"size:255" json:"-"`
	Role        string            `gorm:"size:32" json:"role"`
	Fullname    string            `gorm:"size:255" json:"fullname"`
	Profile     datatypes.JSONMap `json:"profile"`
	ProfileDone bool              `json:"profileDone"`
}
