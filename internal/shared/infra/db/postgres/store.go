package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // driver de PostgreSQL
)

// DocStorePostgres guarda documentos como JSONB. O merge é feito pelo
// próprio Postgres (operador ||), por isso cada Set é um único statement
// atómico — não há janela read-modify-write no adapter.
type DocStorePostgres struct {
	db *sql.DB
}

var _ sharedDomain.Store = (*DocStorePostgres)(nil)

func NewDocStorePostgres(db *sql.DB) *DocStorePostgres {
	return &DocStorePostgres{db: db}
}

// InitPostgres cria o esquema se ainda não existir.
func InitPostgres(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT  NOT NULL,
			id         TEXT  NOT NULL,
			fields     JSONB NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	return err
}

func (s *DocStorePostgres) Get(ctx context.Context, collection, id string) (sharedDomain.Document, error) {
	var fieldsJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection=$1 AND id=$2`,
		collection, id,
	).Scan(&fieldsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedDomain.Document{Exists: false}, nil
		}
		return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
		return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
	}
	return sharedDomain.Document{Exists: true, Fields: fields}, nil
}

func (s *DocStorePostgres) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}

	query := `INSERT INTO documents (collection, id, fields) VALUES ($1,$2,$3)
	          ON CONFLICT (collection, id) DO UPDATE SET fields=EXCLUDED.fields`
	if merge {
		query = `INSERT INTO documents (collection, id, fields) VALUES ($1,$2,$3)
		         ON CONFLICT (collection, id) DO UPDATE SET fields=documents.fields || EXCLUDED.fields`
	}

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(payload)); err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}
	return nil
}

func (s *DocStorePostgres) List(ctx context.Context, collection string) ([]sharedDomain.Identified, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM documents WHERE collection=$1 ORDER BY id`,
		collection,
	)
	if err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	defer rows.Close()

	var docs []sharedDomain.Identified
	for rows.Next() {
		var id string
		var fieldsJSON []byte
		if err := rows.Scan(&id, &fieldsJSON); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
		docs = append(docs, sharedDomain.Identified{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	return docs, nil
}
