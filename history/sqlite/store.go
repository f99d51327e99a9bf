// Package sqlite provides a SQLite-backed history.Store, grounded on
// server/dao/sqlite: a single *sql.DB, a CREATE TABLE IF NOT EXISTS run once
// at open time, and rezi-encoded payload blobs for the fields that don't map
// cleanly onto SQL columns.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/mathscript/history"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// payload holds the fields of a history.Entry that are folded into a single
// rezi-encoded blob column rather than given their own SQL columns. ID and
// Timestamp get real columns since callers query and sort on them; Mode,
// Input, Result, and Err do not need to be queried independently, so they
// travel together the same way game.State rides along in server/dao/sqlite's
// sessions table.
type payload struct {
	Mode   string
	Input  string
	Result string
	Err    string
}

type store struct {
	db *sql.DB
}

// NewStore opens (creating if necessary) a SQLite-backed history.Store in
// dataDir.
func NewStore(dataDir string) (history.Store, error) {
	fileName := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS history (
		id TEXT NOT NULL PRIMARY KEY,
		created INTEGER NOT NULL,
		payload TEXT NOT NULL
	);`
	_, err := s.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (s *store) Log(ctx context.Context, e history.Entry) (history.Entry, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return history.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}
	now := time.Now()

	p := payload{Mode: e.Mode, Input: e.Input, Result: e.Result, Err: e.Err}
	encPayload := base64.StdEncoding.EncodeToString(rezi.EncBinary(&p))

	stmt, err := s.db.Prepare(`INSERT INTO history (id, created, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return history.Entry{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, id.String(), now.Unix(), encPayload)
	if err != nil {
		return history.Entry{}, wrapDBError(err)
	}

	e.ID = id
	e.Timestamp = now
	return e, nil
}

func (s *store) Get(ctx context.Context, id uuid.UUID) (history.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, created, payload FROM history WHERE id = ?`, id.String())
	return scanEntry(row.Scan)
}

func (s *store) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	query := `SELECT id, created, payload FROM history ORDER BY created DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	return entries, nil
}

func scanEntry(scan func(...interface{}) error) (history.Entry, error) {
	var idStr string
	var created int64
	var encPayload string

	if err := scan(&idStr, &created, &encPayload); err != nil {
		return history.Entry{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return history.Entry{}, fmt.Errorf("decode id: %w", err)
	}

	payloadData, err := base64.StdEncoding.DecodeString(encPayload)
	if err != nil {
		return history.Entry{}, fmt.Errorf("decode payload: %w", err)
	}

	var p payload
	if _, err := rezi.DecBinary(payloadData, &p); err != nil {
		return history.Entry{}, fmt.Errorf("decode payload: %w", err)
	}

	return history.Entry{
		ID:        id,
		Timestamp: time.Unix(created, 0),
		Mode:      p.Mode,
		Input:     p.Input,
		Result:    p.Result,
		Err:       p.Err,
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return history.ErrNotFound
	}
	return err
}
