package internment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

type fakeStayStore struct {
	mu    sync.Mutex
	stays map[uuid.UUID]*core.Internment
}

func newFakeStayStore() *fakeStayStore {
	return &fakeStayStore{stays: make(map[uuid.UUID]*core.Internment)}
}

func (s *fakeStayStore) CreateInternment(_ context.Context, in *core.Internment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *in
	s.stays[in.ID] = &cp
	return nil
}

func (s *fakeStayStore) GetInternment(_ context.Context, id, clinicID uuid.UUID) (*core.Internment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.stays[id]
	if !ok || in.ClinicID != clinicID {
		return nil, core.ErrNotFound
	}
	cp := *in
	return &cp, nil
}

func (s *fakeStayStore) DischargeInternment(_ context.Context, id, clinicID uuid.UUID, exit time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.stays[id]
	if !ok || in.ClinicID != clinicID || in.Status != core.InternmentActive {
		return core.ErrNotFound
	}
	in.Status = core.InternmentDischarged
	in.ExitDate = &exit
	return nil
}

func (s *fakeStayStore) ListActiveInternments(_ context.Context, clinicID uuid.UUID) ([]*core.Internment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*core.Internment{}
	for _, in := range s.stays {
		if in.ClinicID == clinicID && in.Status == core.InternmentActive {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeStayStore) CountActiveInternments(_ context.Context, clinicID uuid.UUID) (int, error) {
	active, err := s.ListActiveInternments(context.Background(), clinicID)
	return len(active), err
}

type captureAudit struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func (a *captureAudit) Record(_ context.Context, entry core.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func TestAdmitAndCount(t *testing.T) {
	store := newFakeStayStore()
	recorder := &captureAudit{}
	svc := NewService(store, recorder, zap.NewNop())
	ctx := context.Background()
	clinicID := uuid.New()

	stay, err := svc.Admit(ctx, clinicID, "vet-1", AdmitInput{
		PetID:  uuid.New(),
		Reason: "post-surgery observation",
	})
	require.NoError(t, err)
	assert.Equal(t, core.InternmentActive, stay.Status)

	count, err := svc.CountActive(ctx, "internment", clinicID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The admission is scoped to its clinic.
	count, err = svc.CountActive(ctx, "internment", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "ADMIT_INTERNMENT", recorder.entries[0].Action)
}

func TestAdmit_RequiresPet(t *testing.T) {
	svc := NewService(newFakeStayStore(), &captureAudit{}, zap.NewNop())

	_, err := svc.Admit(context.Background(), uuid.New(), "vet-1", AdmitInput{Reason: "x"})
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestDischarge(t *testing.T) {
	store := newFakeStayStore()
	recorder := &captureAudit{}
	svc := NewService(store, recorder, zap.NewNop())
	ctx := context.Background()
	clinicID := uuid.New()

	stay, err := svc.Admit(ctx, clinicID, "vet-1", AdmitInput{PetID: uuid.New(), Reason: "fever"})
	require.NoError(t, err)

	discharged, err := svc.Discharge(ctx, clinicID, "vet-1", stay.ID)
	require.NoError(t, err)
	assert.Equal(t, core.InternmentDischarged, discharged.Status)
	require.NotNil(t, discharged.ExitDate)

	count, err := svc.CountActive(ctx, "internment", clinicID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Discharging again is a no-op, not an error.
	again, err := svc.Discharge(ctx, clinicID, "vet-1", stay.ID)
	require.NoError(t, err)
	assert.Equal(t, core.InternmentDischarged, again.Status)
}

func TestDischarge_WrongClinic(t *testing.T) {
	store := newFakeStayStore()
	svc := NewService(store, &captureAudit{}, zap.NewNop())
	ctx := context.Background()

	stay, err := svc.Admit(ctx, uuid.New(), "vet-1", AdmitInput{PetID: uuid.New(), Reason: "x"})
	require.NoError(t, err)

	_, err = svc.Discharge(ctx, uuid.New(), "vet-1", stay.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCountActive_UnknownKind(t *testing.T) {
	svc := NewService(newFakeStayStore(), &captureAudit{}, zap.NewNop())

	_, err := svc.CountActive(context.Background(), "telemedicine", uuid.New())
	require.ErrorIs(t, err, core.ErrInvalidArgument)
}
