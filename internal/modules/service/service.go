package service

import (
	"context"
	"errors"

	"github.com/planhub-io/planhub/internal/pkg/apperr"
	"gorm.io/gorm"
)

// EventPublisher is the slice of queue.Publisher the services need;
// narrow so tests can fake it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, payload any) error
}

// OnceGuard deduplicates one-shot announcements (see cache.Deduper).
type OnceGuard interface {
	AcquireOnce(ctx context.Context, scope string, id uint) bool
}

// mapNotFound converts gorm's record-not-found into the taxonomy's
// NotFoundError so the HTTP layer answers 404 instead of 500.
func mapNotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}
