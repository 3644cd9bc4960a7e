package postgres

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/vetnexa/clinic-api/internal/core"
)

type DB struct {
	*sqlx.DB
}

func NewConnection(databaseURL string) (*DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{db}, nil
}

// unavailable marks driver-level failures so handlers can map them to
// 503. Row-level outcomes (ErrNoRows, zero rows affected) are handled
// before this is reached.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
}
