package models

// Earning is an append-only payout record for an employee, referenced by
// login.
type Earning struct {
	Base
	User   string  `gorm:"size:255;index" json:"user"`
	Amount float64 `json:"amount"`
	Note   string  `gorm:"size:512" json:"note"`
}
