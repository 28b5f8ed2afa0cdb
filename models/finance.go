package models

// Finance is an append-only ledger entry. No update or delete is exposed.
type Finance struct {
	Base
	Type   string  `gorm:"size:32" json:"type"`
	Amount float64 `json:"amount"`
	Note   string  `gorm:"size:512" json:"note"`
}
