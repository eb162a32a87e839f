package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/annaclara1997/event-buddy-project/internal/membership/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ToggleAuditRepo implementa ToggleAuditor sobre ClickHouse. Uma linha
// por toggle, incluindo os que ficaram parciais, para poder medir a
// frequência real de janelas de invariante violado.
type ToggleAuditRepo struct {
	db *sql.DB
}

var _ domain.ToggleAuditor = (*ToggleAuditRepo)(nil)

func NewToggleAuditRepo(addr string, dbName string) (*ToggleAuditRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &ToggleAuditRepo{db: conn}, nil
}

func (r *ToggleAuditRepo) RecordToggle(ctx context.Context, rec domain.ToggleRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO membership_toggles (id, user_id, event_id, kind, added, partial, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.UserID,
		rec.EventID,
		string(rec.Kind),
		rec.Added,
		rec.Partial,
		rec.At,
	)
	if err != nil {
		return fmt.Errorf("failed to insert toggle record %s: %w", rec.ID, err)
	}
	return nil
}

// PartialRate devolve a fração de toggles parciais na janela pedida.
func (r *ToggleAuditRepo) PartialRate(ctx context.Context, windowHours int) (float64, error) {
	var rate float64
	err := r.db.QueryRowContext(ctx,
		`SELECT countIf(partial) / count() FROM membership_toggles
		 WHERE at >= now() - INTERVAL ? HOUR`,
		windowHours,
	).Scan(&rate)
	if err != nil {
		return 0, err
	}
	return rate, nil
}
