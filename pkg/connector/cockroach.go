package connector

import (
	"context"
	"recruit-backend/pkg/retry"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// GetCockroachConnector открывает пул и ждёт готовности базы с повторами
func GetCockroachConnector(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn) // cockroach работает с драйвером postgres
	if err != nil {
		return nil, err
	}
	if err = retry.Retry(ctx, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(0)
	return db, nil
}
