package out

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/core/domain"
)

// CachePort caches computed slot sets per (doctor, date, duration).
// Entries hold the pre-past-filter candidate set; the service
// re-applies the past-time filter on every read.
type CachePort interface {
	GetSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int) ([]domain.Slot, bool)
	StoreSlots(ctx context.Context, doctorID uuid.UUID, date time.Time, durationMinutes int, slots []domain.Slot)

	InvalidateDay(ctx context.Context, doctorID uuid.UUID, date time.Time)
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID)
	InvalidateAll(ctx context.Context)
}
