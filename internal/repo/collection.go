package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// collection is the linear-scan CRUD shared by every farm record type.
type collection[T any] struct {
	f    *Farm
	slot func(*Snapshot) *[]T
	idOf func(T) uuid.UUID
}

func (c collection[T]) list() []T {
	var out []T
	c.f.read(func(s *Snapshot) { out = cloneNonNil(*c.slot(s)) })
	return out
}

func (c collection[T]) get(id uuid.UUID) (T, error) {
	var (
		item T
		ok   bool
	)
	c.f.read(func(s *Snapshot) {
		items := *c.slot(s)
		if i := indexOf(items, id, c.idOf); i >= 0 {
			item, ok = items[i], true
		}
	})
	if !ok {
		return item, domain.ErrNotFound
	}
	return item, nil
}

func (c collection[T]) create(ctx context.Context, item T) error {
	return c.f.mutate(ctx, func(next *Snapshot) error {
		items := c.slot(next)
		*items = append(*items, item)
		return nil
	})
}

// update replaces the item with id by fn(prev).
func (c collection[T]) update(ctx context.Context, id uuid.UUID, fn func(prev T) (T, error)) (T, error) {
	var result T
	err := c.f.mutate(ctx, func(next *Snapshot) error {
		items := *c.slot(next)
		i := indexOf(items, id, c.idOf)
		if i < 0 {
			return domain.ErrNotFound
		}
		updated, err := fn(items[i])
		if err != nil {
			return err
		}
		items[i] = updated
		result = updated
		return nil
	})
	return result, err
}

func (c collection[T]) delete(ctx context.Context, id uuid.UUID) error {
	return c.f.mutate(ctx, func(next *Snapshot) error {
		items := c.slot(next)
		rest, removed := without(*items, id, c.idOf)
		if !removed {
			return domain.ErrNotFound
		}
		*items = rest
		return nil
	})
}
