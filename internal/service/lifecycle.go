package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lawdesk/internal/apperr"
	"lawdesk/internal/model"
	"lawdesk/internal/repository"
)

// lifecycleKeys carries the per-entity message keys for lifecycle failures.
type lifecycleKeys struct {
	notFound       string
	alreadyDeleted string
	notDeleted     string
}

// notFoundOr maps a missing-row error to the entity's NotFound key and passes
// every other storage error through untouched.
func notFoundOr(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, key)
	}
	return err
}

// duplicateOr interprets the result of a uniqueness lookup: a found row is a
// Duplicate with the given key, a missing row passes, and any other storage
// error propagates instead of being mistaken for "no duplicate".
func duplicateOr(err error, key string) error {
	switch {
	case err == nil:
		return apperr.New(apperr.Duplicate, key)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// runSoftDelete drives the active → soft-deleted transition for one entity.
// Deleting an already-deleted entity is a Conflict, not a no-op: redundant
// transitions are treated as caller errors and surfaced. The read-check-write
// runs inside one transaction so a failed check commits nothing.
func runSoftDelete[T model.SoftDeletable](
	ctx context.Context,
	tx repository.TransactionManager,
	find func(context.Context, uint) (T, error),
	mark func(context.Context, uint, bool) error,
	id uint,
	keys lifecycleKeys,
) error {
	return tx.RunInTx(ctx, func(txCtx context.Context) error {
		entity, err := find(txCtx, id)
		if err != nil {
			return notFoundOr(err, keys.notFound)
		}
		if entity.Deleted() {
			return apperr.New(apperr.Conflict, keys.alreadyDeleted)
		}
		return mark(txCtx, id, true)
	})
}

// runRestore drives the soft-deleted → active transition. Restoring an entity
// that is not deleted is a Conflict.
func runRestore[T model.SoftDeletable](
	ctx context.Context,
	tx repository.TransactionManager,
	find func(context.Context, uint) (T, error),
	mark func(context.Context, uint, bool) error,
	id uint,
	keys lifecycleKeys,
) error {
	return tx.RunInTx(ctx, func(txCtx context.Context) error {
		entity, err := find(txCtx, id)
		if err != nil {
			return notFoundOr(err, keys.notFound)
		}
		if !entity.Deleted() {
			return apperr.New(apperr.Conflict, keys.notDeleted)
		}
		return mark(txCtx, id, false)
	})
}

// runHardDelete removes the row unconditionally, soft-deleted or not.
func runHardDelete[T any](
	ctx context.Context,
	tx repository.TransactionManager,
	find func(context.Context, uint) (T, error),
	remove func(context.Context, uint) error,
	id uint,
	keys lifecycleKeys,
) error {
	return tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := find(txCtx, id); err != nil {
			return notFoundOr(err, keys.notFound)
		}
		return remove(txCtx, id)
	})
}
