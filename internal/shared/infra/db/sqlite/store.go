package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"

	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"
)

// DocStoreSQLite guarda documentos como JSON numa única tabela. Serve o
// deployment local sem MongoDB.
type DocStoreSQLite struct {
	db *sql.DB
}

var _ sharedDomain.Store = (*DocStoreSQLite)(nil)

func NewDocStoreSQLite(db *sql.DB) *DocStoreSQLite {
	return &DocStoreSQLite{db: db}
}

// InitSQLite cria o esquema se ainda não existir.
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			fields     TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	return err
}

func (s *DocStoreSQLite) Get(ctx context.Context, collection, id string) (sharedDomain.Document, error) {
	var fieldsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection=? AND id=?`,
		collection, id,
	).Scan(&fieldsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedDomain.Document{Exists: false}, nil
		}
		return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
	}
	return sharedDomain.Document{Exists: true, Fields: fields}, nil
}

// Set com merge faz read-merge-write dentro de uma transação para manter a
// atomicidade por documento que o port promete.
func (s *DocStoreSQLite) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}
	defer tx.Rollback() // ignorado se o Commit() for bem sucedido

	final := fields
	if merge {
		var existingJSON string
		err := tx.QueryRowContext(ctx,
			`SELECT fields FROM documents WHERE collection=? AND id=?`,
			collection, id,
		).Scan(&existingJSON)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// documento novo: o merge degenera em insert puro
		case err != nil:
			return sharedDomain.NewStoreError("set", collection, id, err)
		default:
			var existing map[string]any
			if err := json.Unmarshal([]byte(existingJSON), &existing); err != nil {
				return sharedDomain.NewStoreError("set", collection, id, err)
			}
			for k, v := range fields {
				existing[k] = v
			}
			final = existing
		}
	}

	payload, err := json.Marshal(final)
	if err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (collection, id, fields) VALUES (?,?,?)
		 ON CONFLICT (collection, id) DO UPDATE SET fields=excluded.fields`,
		collection, id, string(payload),
	); err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return sharedDomain.NewStoreError("set", collection, id, err)
	}
	return nil
}

func (s *DocStoreSQLite) List(ctx context.Context, collection string) ([]sharedDomain.Identified, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM documents WHERE collection=? ORDER BY id`,
		collection,
	)
	if err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	defer rows.Close()

	var docs []sharedDomain.Identified
	for rows.Next() {
		var id, fieldsJSON string
		if err := rows.Scan(&id, &fieldsJSON); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
		docs = append(docs, sharedDomain.Identified{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, sharedDomain.NewStoreError("list", collection, "", err)
	}
	return docs, nil
}
