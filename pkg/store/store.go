// Package store provides a uniform collection abstraction with two
// interchangeable backends: a durable gorm-backed store and a volatile
// in-process store. Both produce structurally identical records for the same
// operation sequence; the backend is selected once at process startup.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound reports a lookup for an identifier with no record. It is a
// recoverable condition, not a backend failure.
var ErrNotFound = errors.New("record not found")

// Entity is the minimal contract a collection record must satisfy. It is
// implemented by models.Base.
type Entity interface {
	EntityID() string
	EntityCreatedAt() time.Time
	Stamp(id string, at time.Time)
	Touch(at time.Time)
}

// Ptr constrains PT to *T implementing Entity.
type Ptr[T any] interface {
	*T
	Entity
}

// Filter is an equality predicate on a Go struct field name. The gorm backend
// translates the name to its column, the memory backend matches by
// reflection.
type Filter struct {
	Field string
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter { return Filter{Field: field, Value: value} }

// Collection is the uniform contract shared by both backends. List returns
// records newest-first by creation time. Update applies the mutation
// atomically with respect to that single record.
type Collection[T any, PT Ptr[T]] interface {
	Create(ctx context.Context, rec PT) error
	List(ctx context.Context, filters ...Filter) ([]T, error)
	FindByID(ctx context.Context, id string) (PT, error)
	Update(ctx context.Context, id string, mutate func(PT)) (PT, error)
}

// Mode names the active backend.
type Mode string

const (
	ModeDurable  Mode = "durable"
	ModeVolatile Mode = "volatile"
)

// DB is the backend handle selected once at startup and injected into every
// repository. A nil gorm handle means the volatile backend is active.
type DB struct {
	gorm *gorm.DB
}

// Open connects the durable backend. The caller decides what to do on error;
// the intended policy is to fall back to OpenVolatile.
func Open(dialector gorm.Dialector, opts ...gorm.Option) (*DB, error) {
	gdb, err := gorm.Open(dialector, opts...)
	if err != nil {
		return nil, err
	}
	return &DB{gorm: gdb}, nil
}

// OpenVolatile returns a handle whose collections live only in process
// memory and are lost on restart.
func OpenVolatile() *DB { return &DB{} }

// Mode reports which backend this handle drives.
func (db *DB) Mode() Mode {
	if db.gorm != nil {
		return ModeDurable
	}
	return ModeVolatile
}

// Gorm exposes the underlying handle for migrations. Nil in volatile mode.
func (db *DB) Gorm() *gorm.DB { return db.gorm }

// NewCollection binds a typed collection to the backend behind db. prefix is
// used by the volatile backend when constructing identifiers.
func NewCollection[T any, PT Ptr[T]](db *DB, prefix string) Collection[T, PT] {
	if db.gorm != nil {
		return &gormCollection[T, PT]{db: db.gorm}
	}
	return &memCollection[T, PT]{prefix: prefix, now: time.Now}
}
