// Package service orchestrates store calls and maps results to transfer
// representations.
package service

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "github.com/inkwell/inkwell-server/internal/errors"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/store"
)

// storeError translates coded store errors into domain errors, keeping the
// original as the cause. Anything else is a storage failure: it is logged
// through the request logger in ctx and returned unchanged.
func storeError(ctx context.Context, base *slog.Logger, op string, err error) error {
	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		logger.FromContext(ctx, base).Error("storage failure", "op", op, "error", err)
		return err
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(storeErr.Message).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(storeErr.Message).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(storeErr.Message).WithCause(err)
	default:
		logger.FromContext(ctx, base).Error("storage failure", "op", op, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, storeErr.Message)
	}
}
