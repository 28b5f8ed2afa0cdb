package models

import "time"

// Base carries the identifier and timestamps shared by every collection
// record. The identifier is assigned by the active store backend at create
// time and is immutable afterwards.
type Base struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) EntityID() string           { return b.ID }
func (b *Base) EntityCreatedAt() time.Time { return b.CreatedAt }

// Stamp sets the identity fields, once, at create time.
func (b *Base) Stamp(id string, at time.Time) {
	b.ID = id
	b.CreatedAt = at
	b.UpdatedAt = at
}

// Touch records a mutation time.
func (b *Base) Touch(at time.Time) { b.UpdatedAt = at }
