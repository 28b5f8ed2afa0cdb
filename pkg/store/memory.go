package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// memCollection keeps records in process memory, newest first. Identifiers
// are <prefix>_<unix-nanos>. The stamp clock is forced monotonic so that
// back-to-back creates landing in the same nanosecond cannot collide.
//
// Reads hand out copies and mutations rebuild the slice entry, so a listing
// taken under the read lock is never corrupted by a concurrent write.
type memCollection[T any, PT Ptr[T]] struct {
	mu     sync.RWMutex
	prefix string
	now    func() time.Time
	last   time.Time
	recs   []T
}

func (c *memCollection[T, PT]) stamp() time.Time {
	at := c.now()
	if !at.After(c.last) {
		at = c.last.Add(time.Nanosecond)
	}
	c.last = at
	return at
}

func (c *memCollection[T, PT]) Create(ctx context.Context, rec PT) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec.EntityID() == "" {
		at := c.stamp()
		rec.Stamp(fmt.Sprintf("%s_%d", c.prefix, at.UnixNano()), at)
	}
	c.recs = append([]T{*rec}, c.recs...)
	return nil
}

func (c *memCollection[T, PT]) List(ctx context.Context, filters ...Filter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.recs))
	for i := range c.recs {
		if matches(&c.recs[i], filters) {
			out = append(out, c.recs[i])
		}
	}
	return out, nil
}

func (c *memCollection[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.recs {
		if PT(&c.recs[i]).EntityID() == id {
			cp := c.recs[i]
			return PT(&cp), nil
		}
	}
	return nil, ErrNotFound
}

func (c *memCollection[T, PT]) Update(ctx context.Context, id string, mutate func(PT)) (PT, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.recs {
		if PT(&c.recs[i]).EntityID() != id {
			continue
		}
		cp := c.recs[i]
		mutate(PT(&cp))
		PT(&cp).Touch(c.stamp())
		c.recs[i] = cp
		out := cp
		return PT(&out), nil
	}
	return nil, ErrNotFound
}

func matches[T any](rec *T, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	v := reflect.ValueOf(rec).Elem()
	for _, f := range filters {
		fv := v.FieldByName(f.Field)
		if !fv.IsValid() || !reflect.DeepEqual(fv.Interface(), f.Value) {
			return false
		}
	}
	return true
}
