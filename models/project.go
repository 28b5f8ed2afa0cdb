package models

import "gorm.io/datatypes"

// Project groups free-form notes under a name. Notes are kept newest first.
type Project struct {
	Base
	Name  string                      `gorm:"size:255;not null" json:"name"`
	Logo  string                      `gorm:"size:512" json:"logo"`
	Notes datatypes.JSONSlice[string] `json:"notes"`
}
