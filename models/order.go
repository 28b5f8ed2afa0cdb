package models

// Order is a client work order. Done flips both ways via the toggle
// operation; there is no other lifecycle.
type Order struct {
	Base
	Title   string  `gorm:"size:255;not null" json:"title"`
	Client  string  `gorm:"size:255" json:"client"`
	What    string  `gorm:"size:512" json:"what"`
	Due     string  `gorm:"size:64" json:"due"`
	Amount  float64 `json:"amount"`
	Contact string  `gorm:"size:255" json:"contact"`
	Done    bool    `json:"done"`
}
