package clinicconfig

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

type fakeStore struct {
	mu      sync.Mutex
	clinics map[uuid.UUID]*core.Clinic
	getErr  error
	setErr  error
}

func newFakeStore(clinics ...*core.Clinic) *fakeStore {
	s := &fakeStore{clinics: make(map[uuid.UUID]*core.Clinic)}
	for _, c := range clinics {
		s.clinics[c.ID] = c
	}
	return s
}

func (s *fakeStore) GetClinic(_ context.Context, id uuid.UUID) (*core.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.clinics[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) SetCapability(_ context.Context, id uuid.UUID, flag string, prior, desired bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	c, ok := s.clinics[id]
	if !ok {
		return core.ErrNotFound
	}
	current, ok := c.Capabilities.Flag(flag)
	if !ok {
		return core.ErrInvalidArgument
	}
	if current != prior {
		return core.ErrConflict
	}
	c.Capabilities.SetFlag(flag, desired)
	return nil
}

func (s *fakeStore) UpdateIdentity(_ context.Context, id uuid.UUID, upd core.IdentityUpdate) (*core.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clinics[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if upd.Name != nil {
		c.Identity.Name = *upd.Name
	}
	if upd.Address != nil {
		c.Identity.Address = *upd.Address
	}
	if upd.Phone != nil {
		c.Identity.Phone = *upd.Phone
	}
	if upd.Email != nil {
		c.Identity.Email = *upd.Email
	}
	if upd.Website != nil {
		c.Identity.Website = *upd.Website
	}
	if upd.LogoURL != nil {
		c.Identity.LogoURL = *upd.LogoURL
	}
	if upd.OperatingHours != nil {
		c.Identity.OperatingHours = *upd.OperatingHours
	}
	if upd.CNPJ != nil {
		c.Identity.CNPJ = *upd.CNPJ
	}
	identity := c.Identity
	return &identity, nil
}

type fakeOps struct {
	active int
	err    error
}

func (o *fakeOps) CountActive(_ context.Context, kind string, _ uuid.UUID) (int, error) {
	if o.err != nil {
		return 0, o.err
	}
	return o.active, nil
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

func (a *captureAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func newClinic() *core.Clinic {
	return &core.Clinic{
		ID: uuid.New(),
		Identity: core.Identity{
			Name: "Clinica Boa Vista",
		},
		Capabilities: core.Capabilities{
			HasClinical:   true,
			HasAgenda:     true,
			HasInternment: true,
		},
	}
}

func setup(clinic *core.Clinic, ops *fakeOps) (*Service, *fakeStore, *captureAudit) {
	store := newFakeStore(clinic)
	if ops == nil {
		ops = &fakeOps{}
	}
	recorder := &captureAudit{}
	svc := NewService(store, ops, recorder, nil, zap.NewNop())
	return svc, store, recorder
}

func TestToggleModule_UngatedFlag(t *testing.T) {
	clinic := newClinic()
	svc, _, _ := setup(clinic, nil)
	ctx := context.Background()

	caps, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasNPS", true)
	require.NoError(t, err)
	assert.True(t, caps.HasNPS)

	caps, err = svc.ToggleModule(ctx, clinic.ID, "user-1", "hasNPS", false)
	require.NoError(t, err)
	assert.False(t, caps.HasNPS)
}

func TestToggleModule_OnlyOneFlagChanges(t *testing.T) {
	clinic := newClinic()
	svc, _, _ := setup(clinic, nil)
	ctx := context.Background()

	before, err := svc.GetFlags(ctx, clinic.ID)
	require.NoError(t, err)

	_, err = svc.ToggleModule(ctx, clinic.ID, "user-1", "hasHomeCare", true)
	require.NoError(t, err)

	after, err := svc.GetFlags(ctx, clinic.ID)
	require.NoError(t, err)

	expected := *before
	expected.HasHomeCare = true
	assert.Equal(t, expected, *after)
}

func TestToggleModule_FiscalRequiresCNPJ(t *testing.T) {
	clinic := newClinic()
	clinic.Identity.CNPJ = ""
	svc, _, _ := setup(clinic, nil)
	ctx := context.Background()

	_, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasFiscal", true)

	var perr *core.PreconditionError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "CNPJ")

	// The flag must be untouched after the rejected transition.
	caps, err := svc.GetFlags(ctx, clinic.ID)
	require.NoError(t, err)
	assert.False(t, caps.HasFiscal)
}

func TestToggleModule_FiscalSucceedsWithCNPJ(t *testing.T) {
	clinic := newClinic()
	clinic.Identity.CNPJ = "12.345.678/0001-90"
	svc, _, _ := setup(clinic, nil)

	caps, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasFiscal", true)
	require.NoError(t, err)
	assert.True(t, caps.HasFiscal)
}

func TestToggleModule_InternmentBlockedByActivePatients(t *testing.T) {
	clinic := newClinic()
	svc, _, recorder := setup(clinic, &fakeOps{active: 3})
	ctx := context.Background()

	_, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasInternment", false)

	var perr *core.PreconditionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Count)
	assert.Contains(t, perr.Reason, "3 active patients")

	caps, err := svc.GetFlags(ctx, clinic.ID)
	require.NoError(t, err)
	assert.True(t, caps.HasInternment)
	assert.Equal(t, 0, recorder.count())
}

func TestToggleModule_InternmentDisablesAtZero(t *testing.T) {
	clinic := newClinic()
	svc, _, _ := setup(clinic, &fakeOps{active: 0})

	caps, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasInternment", false)
	require.NoError(t, err)
	assert.False(t, caps.HasInternment)
}

func TestToggleModule_InternmentCountErrorPropagates(t *testing.T) {
	clinic := newClinic()
	svc, _, _ := setup(clinic, &fakeOps{err: fmt.Errorf("store unavailable")})

	_, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasInternment", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestToggleModule_Idempotent(t *testing.T) {
	clinic := newClinic()
	svc, _, recorder := setup(clinic, nil)
	ctx := context.Background()

	_, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasAI", true)
	require.NoError(t, err)
	assert.Equal(t, 1, recorder.count())

	// Second call with the same desired state is a no-op: success, no
	// second audit entry.
	caps, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasAI", true)
	require.NoError(t, err)
	assert.True(t, caps.HasAI)
	assert.Equal(t, 1, recorder.count())
}

func TestToggleModule_LostSwapIsConflict(t *testing.T) {
	clinic := newClinic()
	svc, store, recorder := setup(clinic, nil)

	// A concurrent toggle changed the flag between the read and the
	// conditional write.
	store.setErr = core.ErrConflict

	_, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasNPS", true)
	require.ErrorIs(t, err, core.ErrConflict)
	assert.Equal(t, 0, recorder.count())
}

func TestToggleModule_StoreUnavailablePropagates(t *testing.T) {
	clinic := newClinic()
	svc, store, recorder := setup(clinic, nil)

	store.getErr = fmt.Errorf("%w: connection refused", core.ErrUnavailable)

	_, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasNPS", true)
	require.ErrorIs(t, err, core.ErrUnavailable)
	assert.Equal(t, 0, recorder.count())
}

func TestToggleModule_UnknownClinic(t *testing.T) {
	clinic := newClinic()
	svc, _, recorder := setup(clinic, nil)

	_, err := svc.ToggleModule(context.Background(), uuid.New(), "user-1", "hasAgenda", false)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 0, recorder.count())
}

func TestToggleModule_UnknownFlag(t *testing.T) {
	clinic := newClinic()
	svc, _, recorder := setup(clinic, nil)

	_, err := svc.ToggleModule(context.Background(), clinic.ID, "user-1", "hasTimeTravel", true)
	require.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.Equal(t, 0, recorder.count())
}

func TestToggleModule_AuditEntryShape(t *testing.T) {
	clinic := newClinic()
	svc, _, recorder := setup(clinic, nil)

	_, err := svc.ToggleModule(context.Background(), clinic.ID, "user-7", "hasFinancial", true)
	require.NoError(t, err)

	require.Equal(t, 1, recorder.count())
	entry := recorder.entries[0]
	assert.Equal(t, "TOGGLE_MODULE", entry.Action)
	assert.Equal(t, clinic.ID.String(), entry.ClinicID)
	assert.Equal(t, "user-7", entry.UserID)
	assert.JSONEq(t, `{"hasFinancial": false}`, string(entry.Before))
	assert.JSONEq(t, `{"hasFinancial": true}`, string(entry.After))
}

func TestGetFlags_UnknownClinic(t *testing.T) {
	svc, _, _ := setup(newClinic(), nil)

	_, err := svc.GetFlags(context.Background(), uuid.New())
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateIdentity_PartialUpdate(t *testing.T) {
	clinic := newClinic()
	clinic.Identity.Phone = "11 1111-1111"
	svc, _, recorder := setup(clinic, nil)
	ctx := context.Background()

	cnpj := "12.345.678/0001-90"
	identity, err := svc.UpdateIdentity(ctx, clinic.ID, "user-1", core.IdentityUpdate{CNPJ: &cnpj})
	require.NoError(t, err)

	assert.Equal(t, cnpj, identity.CNPJ)
	// Fields not present in the update are untouched.
	assert.Equal(t, "Clinica Boa Vista", identity.Name)
	assert.Equal(t, "11 1111-1111", identity.Phone)
	assert.Equal(t, 1, recorder.count())

	// Setting the CNPJ unblocks the fiscal activation rule.
	caps, err := svc.ToggleModule(ctx, clinic.ID, "user-1", "hasFiscal", true)
	require.NoError(t, err)
	assert.True(t, caps.HasFiscal)
}
