package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	// Import sqlite driver
	_ "modernc.org/sqlite"

	"github.com/castlebridge/expensetrackr/backend/internal/model"
)

// SQLiteStore implements Store on a local SQLite database. Used for
// self-hosted deployments where Firestore is not available.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens a database connection and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			external_id TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			description TEXT NOT NULL,
			amount REAL NOT NULL,
			category TEXT NOT NULL,
			date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_owner_date ON records(owner_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_records_owner_created ON records(owner_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) CreateOwner(ctx context.Context, owner *model.Owner) error {
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	if err := checkID("owner id", owner.ID); err != nil {
		return err
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (id, external_id, email, name, avatar_url, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		owner.ID, owner.ExternalID, owner.Email, owner.Name, owner.AvatarURL, owner.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errAlreadyExists("owner", owner.ExternalID)
		}
		return fmt.Errorf("create owner: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetOwnerByExternalID(ctx context.Context, externalID string) (*model.Owner, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, external_id, email, name, avatar_url, created_at FROM users WHERE external_id = ?`,
		externalID,
	)

	var owner model.Owner
	err := row.Scan(&owner.ID, &owner.ExternalID, &owner.Email, &owner.Name, &owner.AvatarURL, &owner.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	return &owner, nil
}

func (s *SQLiteStore) CreateRecord(ctx context.Context, record *model.ExpenseRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := checkID("record id", record.ID); err != nil {
		return err
	}
	if err := checkID("owner id", record.OwnerID); err != nil {
		return err
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO records (id, owner_id, description, amount, category, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.OwnerID, record.Description, record.Amount, record.Category, record.Date, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, ownerID string, limit int) ([]*model.ExpenseRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, owner_id, description, amount, category, date, created_at
		 FROM records WHERE owner_id = ? ORDER BY date DESC, created_at DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *SQLiteStore) ListAllRecords(ctx context.Context, ownerID string) ([]*model.ExpenseRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, owner_id, description, amount, category, date, created_at
		 FROM records WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *SQLiteStore) ListRecentRecords(ctx context.Context, ownerID string, since time.Time, limit int) ([]*model.ExpenseRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, owner_id, description, amount, category, date, created_at
		 FROM records WHERE owner_id = ? AND created_at >= ? ORDER BY created_at DESC LIMIT ?`,
		ownerID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *SQLiteStore) DeleteRecord(ctx context.Context, ownerID, recordID string) error {
	// The owner_id predicate is the cross-owner guard: a foreign record is
	// indistinguishable from a missing one.
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM records WHERE id = ? AND owner_id = ?`,
		recordID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]*model.ExpenseRecord, error) {
	var records []*model.ExpenseRecord
	for rows.Next() {
		var r model.ExpenseRecord
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Description, &r.Amount, &r.Category, &r.Date, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
