package internment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

type Store interface {
	CreateInternment(ctx context.Context, in *core.Internment) error
	GetInternment(ctx context.Context, id, clinicID uuid.UUID) (*core.Internment, error)
	DischargeInternment(ctx context.Context, id, clinicID uuid.UUID, exit time.Time) error
	ListActiveInternments(ctx context.Context, clinicID uuid.UUID) ([]*core.Internment, error)
	CountActiveInternments(ctx context.Context, clinicID uuid.UUID) (int, error)
}

// AuditRecorder mirrors clinicconfig.AuditRecorder; admissions and
// discharges are audited best-effort like any governed mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entry core.AuditEntry)
}

// Service manages inpatient stays. Its active-stay count is the
// operational state the config gate consults before letting a clinic
// disable the internment module.
type Service struct {
	store  Store
	audit  AuditRecorder
	logger *zap.Logger
}

func NewService(store Store, audit AuditRecorder, logger *zap.Logger) *Service {
	return &Service{store: store, audit: audit, logger: logger}
}

type AdmitInput struct {
	PetID     uuid.UUID
	Reason    string
	BedNumber string
}

func (s *Service) Admit(ctx context.Context, clinicID uuid.UUID, userID string, in AdmitInput) (*core.Internment, error) {
	if in.PetID == uuid.Nil {
		return nil, fmt.Errorf("%w: pet id is required", core.ErrInvalidArgument)
	}

	stay := &core.Internment{
		ID:        uuid.New(),
		ClinicID:  clinicID,
		PetID:     in.PetID,
		Reason:    in.Reason,
		BedNumber: in.BedNumber,
		Status:    core.InternmentActive,
		EntryDate: time.Now(),
	}

	if err := s.store.CreateInternment(ctx, stay); err != nil {
		return nil, err
	}

	after, _ := json.Marshal(stay)
	s.audit.Record(ctx, core.AuditEntry{
		ClinicID:   clinicID.String(),
		UserID:     userID,
		Action:     "ADMIT_INTERNMENT",
		EntityType: "internment",
		EntityID:   stay.ID.String(),
		After:      after,
	})

	s.logger.Info("Patient admitted",
		zap.String("internment_id", stay.ID.String()),
		zap.String("clinic_id", clinicID.String()),
	)

	return stay, nil
}

func (s *Service) Discharge(ctx context.Context, clinicID uuid.UUID, userID string, id uuid.UUID) (*core.Internment, error) {
	stay, err := s.store.GetInternment(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}
	if stay.Status == core.InternmentDischarged {
		return stay, nil
	}

	before, _ := json.Marshal(stay)

	now := time.Now()
	if err := s.store.DischargeInternment(ctx, id, clinicID, now); err != nil {
		return nil, err
	}

	stay.Status = core.InternmentDischarged
	stay.ExitDate = &now

	after, _ := json.Marshal(stay)
	s.audit.Record(ctx, core.AuditEntry{
		ClinicID:   clinicID.String(),
		UserID:     userID,
		Action:     "DISCHARGE_INTERNMENT",
		EntityType: "internment",
		EntityID:   stay.ID.String(),
		Before:     before,
		After:      after,
	})

	return stay, nil
}

func (s *Service) Active(ctx context.Context, clinicID uuid.UUID) ([]*core.Internment, error) {
	return s.store.ListActiveInternments(ctx, clinicID)
}

// CountActive satisfies the config gate's OperationalState interface.
// Only the "internment" kind exists today.
func (s *Service) CountActive(ctx context.Context, kind string, clinicID uuid.UUID) (int, error) {
	if kind != "internment" {
		return 0, fmt.Errorf("%w: unknown operational state kind %q", core.ErrInvalidArgument, kind)
	}
	return s.store.CountActiveInternments(ctx, clinicID)
}
