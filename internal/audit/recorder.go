package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

// Store persists audit entries. Insert failures are isolated by the
// Recorder and never reach the governed operation.
type Store interface {
	InsertAuditEntry(ctx context.Context, entry core.AuditEntry) error
	ListAuditEntries(ctx context.Context, clinicID string, limit int) ([]core.AuditEntry, error)
}

// FailureCounter is notified of failed audit writes; the metrics
// collector satisfies it.
type FailureCounter interface {
	RecordAuditFailure()
}

// Recorder writes audit entries best-effort. Record dispatches the
// write on its own goroutine with a detached context, so a slow or
// failing audit store can neither block nor fail the caller.
type Recorder struct {
	store   Store
	logger  *zap.Logger
	metrics FailureCounter
	timeout time.Duration

	// onWrite, when set, is signalled after each attempted write.
	// Used by tests to wait for the async path.
	onWrite func(err error)
}

func NewRecorder(store Store, logger *zap.Logger, metrics FailureCounter) *Recorder {
	return &Recorder{
		store:   store,
		logger:  logger,
		metrics: metrics,
		timeout: 5 * time.Second,
	}
}

func (r *Recorder) Record(_ context.Context, entry core.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := r.store.InsertAuditEntry(ctx, entry)
		if err != nil {
			r.logger.Error("Failed to write audit entry",
				zap.String("clinic_id", entry.ClinicID),
				zap.String("action", entry.Action),
				zap.Error(err),
			)
			if r.metrics != nil {
				r.metrics.RecordAuditFailure()
			}
		}
		if r.onWrite != nil {
			r.onWrite(err)
		}
	}()
}

// ListRecent returns the newest entries for one clinic, capped at limit.
func (r *Recorder) ListRecent(ctx context.Context, clinicID string, limit int) ([]core.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return r.store.ListAuditEntries(ctx, clinicID, limit)
}
