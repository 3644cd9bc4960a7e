package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vetnexa/clinic-api/internal/core"
)

func (db *DB) CreateInternment(ctx context.Context, in *core.Internment) error {
	query := `
        INSERT INTO internments (
            id, clinic_id, pet_id, reason, bed_number, status, entry_date
        ) VALUES (
            :id, :clinic_id, :pet_id, :reason, :bed_number, :status, :entry_date
        )`

	_, err := db.NamedExecContext(ctx, query, in)
	return unavailable(err)
}

func (db *DB) GetInternment(ctx context.Context, id, clinicID uuid.UUID) (*core.Internment, error) {
	var in core.Internment
	query := `SELECT * FROM internments WHERE id = $1 AND clinic_id = $2`

	err := db.GetContext(ctx, &in, query, id, clinicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &in, nil
}

func (db *DB) DischargeInternment(ctx context.Context, id, clinicID uuid.UUID, exit time.Time) error {
	query := `
        UPDATE internments
        SET status = $3, exit_date = $4
        WHERE id = $1 AND clinic_id = $2 AND status = $5`

	res, err := db.ExecContext(ctx, query, id, clinicID,
		core.InternmentDischarged, exit, core.InternmentActive)
	if err != nil {
		return unavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (db *DB) ListActiveInternments(ctx context.Context, clinicID uuid.UUID) ([]*core.Internment, error) {
	stays := []*core.Internment{}
	query := `
        SELECT * FROM internments
        WHERE clinic_id = $1 AND status = $2
        ORDER BY entry_date DESC`

	err := db.SelectContext(ctx, &stays, query, clinicID, core.InternmentActive)
	return stays, unavailable(err)
}

func (db *DB) CountActiveInternments(ctx context.Context, clinicID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM internments WHERE clinic_id = $1 AND status = $2`

	err := db.GetContext(ctx, &count, query, clinicID, core.InternmentActive)
	return count, unavailable(err)
}
