package clinicconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

// ClinicStore is the persistent record of one row per clinic. The gate
// never caches clinic state across calls; every toggle re-reads it.
type ClinicStore interface {
	GetClinic(ctx context.Context, id uuid.UUID) (*core.Clinic, error)

	// SetCapability writes one flag conditionally on its prior value
	// (compare-and-swap), so two concurrent toggles of the same flag
	// cannot silently overwrite each other. It returns core.ErrNotFound
	// for an unknown clinic and core.ErrConflict for a lost swap.
	SetCapability(ctx context.Context, id uuid.UUID, flag string, prior, desired bool) error

	UpdateIdentity(ctx context.Context, id uuid.UUID, upd core.IdentityUpdate) (*core.Identity, error)
}

// OperationalState answers live-entity counts that deactivation rules
// consult, e.g. active internments.
type OperationalState interface {
	CountActive(ctx context.Context, kind string, clinicID uuid.UUID) (int, error)
}

// AuditRecorder takes an entry best-effort. Implementations must never
// let a failed write reach the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry core.AuditEntry)
}

// FlagsCache invalidates cached flag reads after a successful toggle.
type FlagsCache interface {
	Invalidate(ctx context.Context, clinicID string) error
}

// Service is the module gate: it authorizes and applies capability-flag
// transitions for one clinic at a time.
type Service struct {
	store  ClinicStore
	ops    OperationalState
	audit  AuditRecorder
	cache  FlagsCache
	rules  map[ruleKey]Rule
	logger *zap.Logger
}

func NewService(store ClinicStore, ops OperationalState, audit AuditRecorder, cache FlagsCache, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		ops:    ops,
		audit:  audit,
		cache:  cache,
		rules:  defaultRules(),
		logger: logger,
	}
}

// ToggleModule applies one flag transition and returns the full,
// freshly-read flag set. Flags with no registered rule for the
// requested direction transition unconditionally.
func (s *Service) ToggleModule(ctx context.Context, clinicID uuid.UUID, userID, flag string, desired bool) (*core.Capabilities, error) {
	if _, ok := core.FlagColumn(flag); !ok {
		return nil, fmt.Errorf("%w: unknown module %q", core.ErrInvalidArgument, flag)
	}

	clinic, err := s.store.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	current, _ := clinic.Capabilities.Flag(flag)
	if current == desired {
		// Already in the requested state. No write, no audit entry.
		caps := clinic.Capabilities
		return &caps, nil
	}

	if rule, ok := s.rules[ruleKey{Flag: flag, Direction: Direction(desired)}]; ok {
		if err := rule(ctx, clinic, s.ops); err != nil {
			return nil, err
		}
	}

	if err := s.store.SetCapability(ctx, clinicID, flag, current, desired); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, clinicID.String()); err != nil {
			s.logger.Warn("Failed to invalidate flags cache",
				zap.String("clinic_id", clinicID.String()),
				zap.Error(err),
			)
		}
	}

	updated, err := s.store.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	s.recordToggle(ctx, clinicID, userID, flag, current, desired)

	s.logger.Info("Module toggled",
		zap.String("clinic_id", clinicID.String()),
		zap.String("module", flag),
		zap.Bool("enabled", desired),
		zap.String("user", userID),
	)

	caps := updated.Capabilities
	return &caps, nil
}

// GetFlags returns the current value of every capability flag.
func (s *Service) GetFlags(ctx context.Context, clinicID uuid.UUID) (*core.Capabilities, error) {
	clinic, err := s.store.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	caps := clinic.Capabilities
	return &caps, nil
}

// UpdateIdentity applies a partial update of the clinic profile. There
// is no business-rule gating here, but the fiscal activation rule reads
// the CNPJ this writes.
func (s *Service) UpdateIdentity(ctx context.Context, clinicID uuid.UUID, userID string, upd core.IdentityUpdate) (*core.Identity, error) {
	clinic, err := s.store.GetClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateIdentity(ctx, clinicID, upd)
	if err != nil {
		return nil, err
	}

	before, _ := json.Marshal(clinic.Identity)
	after, _ := json.Marshal(updated)
	s.audit.Record(ctx, core.AuditEntry{
		ClinicID:   clinicID.String(),
		UserID:     userID,
		Action:     "UPDATE_IDENTITY",
		EntityType: "clinic",
		EntityID:   clinicID.String(),
		Before:     before,
		After:      after,
		CreatedAt:  time.Now(),
	})

	return updated, nil
}

func (s *Service) recordToggle(ctx context.Context, clinicID uuid.UUID, userID, flag string, before, after bool) {
	beforeJSON, _ := json.Marshal(map[string]bool{flag: before})
	afterJSON, _ := json.Marshal(map[string]bool{flag: after})

	s.audit.Record(ctx, core.AuditEntry{
		ClinicID:   clinicID.String(),
		UserID:     userID,
		Action:     "TOGGLE_MODULE",
		EntityType: "clinic",
		EntityID:   clinicID.String(),
		Before:     beforeJSON,
		After:      afterJSON,
		CreatedAt:  time.Now(),
	})
}
