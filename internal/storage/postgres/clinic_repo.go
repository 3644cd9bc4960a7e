package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetnexa/clinic-api/internal/core"
)

type clinicRow struct {
	ID uuid.UUID `db:"id"`
	core.Identity
	core.Capabilities
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (db *DB) GetClinic(ctx context.Context, id uuid.UUID) (*core.Clinic, error) {
	var row clinicRow
	query := `
        SELECT id, name, address, phone, email, website, logo_url,
               operating_hours, cnpj,
               has_clinical, has_agenda, has_internment, has_home_care,
               has_petshop_service, has_petshop_retail, has_stock_advanced,
               has_financial, has_fiscal, has_contabil, has_ai,
               has_app_tutor, has_nps,
               created_at, updated_at
        FROM clinics
        WHERE id = $1`

	err := db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}

	return &core.Clinic{
		ID:           row.ID,
		Identity:     row.Identity,
		Capabilities: row.Capabilities,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// SetCapability flips one flag column conditionally on its prior value.
// The column name comes from the closed core.FlagColumn mapping, never
// from request input.
func (db *DB) SetCapability(ctx context.Context, id uuid.UUID, flag string, prior, desired bool) error {
	col, ok := core.FlagColumn(flag)
	if !ok {
		return fmt.Errorf("%w: unknown module %q", core.ErrInvalidArgument, flag)
	}

	query := fmt.Sprintf(`
        UPDATE clinics
        SET %s = $1, updated_at = NOW()
        WHERE id = $2 AND %s = $3`, col, col)

	res, err := db.ExecContext(ctx, query, desired, id, prior)
	if err != nil {
		return unavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if affected == 0 {
		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM clinics WHERE id = $1)`, id); err != nil {
			return unavailable(err)
		}
		if !exists {
			return core.ErrNotFound
		}
		// Row exists but the prior value no longer matches: a
		// concurrent toggle won the swap.
		return core.ErrConflict
	}

	return nil
}

func (db *DB) UpdateIdentity(ctx context.Context, id uuid.UUID, upd core.IdentityUpdate) (*core.Identity, error) {
	query := `
        UPDATE clinics SET
            name            = COALESCE($2, name),
            address         = COALESCE($3, address),
            phone           = COALESCE($4, phone),
            email           = COALESCE($5, email),
            website         = COALESCE($6, website),
            logo_url        = COALESCE($7, logo_url),
            operating_hours = COALESCE($8, operating_hours),
            cnpj            = COALESCE($9, cnpj),
            updated_at      = NOW()
        WHERE id = $1
        RETURNING name, address, phone, email, website, logo_url,
                  operating_hours, cnpj`

	var identity core.Identity
	err := db.GetContext(ctx, &identity, query, id,
		upd.Name, upd.Address, upd.Phone, upd.Email,
		upd.Website, upd.LogoURL, upd.OperatingHours, upd.CNPJ,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}

	return &identity, nil
}
