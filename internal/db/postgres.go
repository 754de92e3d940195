package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"skylens/verdant/internal/logging"
)

var DB *sqlx.DB

// InitPostgres connects the sqlx pool, retrying for a few seconds so the
// server survives the database coming up after it does.
func InitPostgres(dsn string) error {
	var err error
	for attempt := 1; attempt <= 10; attempt++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		logging.Warn("Postgres not ready, retrying",
			"attempt", attempt,
			"error", err.Error(),
		)
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
