package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// gormCollection persists records in one table per entity type. Identifiers
// are store-assigned UUID strings, opaque to callers.
type gormCollection[T any, PT Ptr[T]] struct {
	db *gorm.DB
}

var namer = schema.NamingStrategy{}

func (c *gormCollection[T, PT]) Create(ctx context.Context, rec PT) error {
	if rec.EntityID() == "" {
		rec.Stamp(uuid.NewString(), time.Now().UTC())
	}
	return c.db.WithContext(ctx).Create(rec).Error
}

func (c *gormCollection[T, PT]) List(ctx context.Context, filters ...Filter) ([]T, error) {
	q := c.db.WithContext(ctx).Order("created_at DESC")
	for _, f := range filters {
		q = q.Where(map[string]any{namer.ColumnName("", f.Field): f.Value})
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gormCollection[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	var rec T
	err := c.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return PT(&rec), nil
}

func (c *gormCollection[T, PT]) Update(ctx context.Context, id string, mutate func(PT)) (PT, error) {
	rec, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(rec)
	rec.Touch(time.Now().UTC())
	if err := c.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
