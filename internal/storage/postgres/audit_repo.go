package postgres

import (
	"context"

	"github.com/vetnexa/clinic-api/internal/core"
)

func (db *DB) InsertAuditEntry(ctx context.Context, entry core.AuditEntry) error {
	query := `
        INSERT INTO audit_logs (
            id, clinic_id, user_id, action, entity_type, entity_id,
            before_json, after_json, created_at
        ) VALUES (
            :id, :clinic_id, :user_id, :action, :entity_type, :entity_id,
            :before_json, :after_json, :created_at
        )`

	_, err := db.NamedExecContext(ctx, query, entry)
	return err
}

func (db *DB) ListAuditEntries(ctx context.Context, clinicID string, limit int) ([]core.AuditEntry, error) {
	entries := []core.AuditEntry{}
	query := `
        SELECT * FROM audit_logs
        WHERE clinic_id = $1
        ORDER BY created_at DESC
        LIMIT $2`

	err := db.SelectContext(ctx, &entries, query, clinicID, limit)
	return entries, unavailable(err)
}
