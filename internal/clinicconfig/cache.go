package clinicconfig

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

// FlagsStore is the cache side of flag reads; the redis client
// satisfies it.
type FlagsStore interface {
	GetFlags(ctx context.Context, clinicID string) (*core.Capabilities, error)
	SetFlags(ctx context.Context, clinicID string, caps *core.Capabilities) error
}

// CachedFlags is a read-through view of a clinic's flags, backed by the
// gate for misses. The feature middleware sits on the hot path of every
// gated request, so it reads here instead of hitting postgres each time.
// Toggles invalidate the cached entry, so staleness is bounded by the
// cache TTL only when an invalidation is lost.
type CachedFlags struct {
	svc    *Service
	cache  FlagsStore
	logger *zap.Logger
}

func NewCachedFlags(svc *Service, cache FlagsStore, logger *zap.Logger) *CachedFlags {
	return &CachedFlags{svc: svc, cache: cache, logger: logger}
}

func (f *CachedFlags) GetFlags(ctx context.Context, clinicID uuid.UUID) (*core.Capabilities, error) {
	if f.cache != nil {
		if caps, err := f.cache.GetFlags(ctx, clinicID.String()); err == nil && caps != nil {
			return caps, nil
		}
	}

	caps, err := f.svc.GetFlags(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.SetFlags(ctx, clinicID.String(), caps); err != nil {
			f.logger.Warn("Failed to populate flags cache",
				zap.String("clinic_id", clinicID.String()),
				zap.Error(err),
			)
		}
	}

	return caps, nil
}
