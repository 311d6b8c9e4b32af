package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Zweer/pill-bot/internal/domain"
)

// scanPageSize bounds one page of an eligibility scan. The contract does
// not assume the result fits one page.
const scanPageSize = 500

// SQLiteRepo implements Users and Quotes on an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// --- Users ---

// Get returns the user record for chatID, or ErrNotFound.
func (r *SQLiteRepo) Get(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, name, alert_hour, alert_enabled, created_at
		FROM users
		WHERE chat_id = ?`,
		chatID,
	)

	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", chatID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Put inserts or fully replaces a user record keyed by chat_id.
// created_at is kept from the existing row on conflict.
func (r *SQLiteRepo) Put(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (chat_id, name, alert_hour, alert_enabled, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			name          = excluded.name,
			alert_hour    = excluded.alert_hour,
			alert_enabled = excluded.alert_enabled`,
		u.ChatID, u.Name, toNullInt64(u.AlertHour), boolToInt(u.AlertEnabled), created.UTC().Unix(),
	)
	return err
}

// ScanEligible returns all users with notifications enabled at the given
// hour. It pages through the table by chat_id so the full set is returned
// no matter how many rows match.
func (r *SQLiteRepo) ScanEligible(ctx context.Context, hour int) ([]domain.User, error) {
	var res []domain.User
	after := int64(-1 << 62) // below any real chat id

	for {
		rows, err := r.db.QueryContext(ctx, `
			SELECT chat_id, name, alert_hour, alert_enabled, created_at
			FROM users
			WHERE alert_enabled = 1
			  AND alert_hour = ?
			  AND chat_id > ?
			ORDER BY chat_id ASC
			LIMIT ?`,
			hour, after, scanPageSize,
		)
		if err != nil {
			return nil, err
		}

		n := 0
		for rows.Next() {
			u, err := scanUser(rows.Scan)
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
			res = append(res, *u)
			after = u.ChatID
			n++
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()

		if n < scanPageSize {
			return res, nil
		}
	}
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var (
		chatID     int64
		name       string
		hourNS     sql.NullInt64
		enabledInt int
		createdAt  int64
	)
	if err := scan(&chatID, &name, &hourNS, &enabledInt, &createdAt); err != nil {
		return nil, err
	}
	return &domain.User{
		ChatID:       chatID,
		Name:         name,
		AlertHour:    fromNullInt64(hourNS),
		AlertEnabled: enabledInt != 0,
		CreatedAt:    time.Unix(createdAt, 0).UTC(),
	}, nil
}

// --- Quotes ---

// LoadAll writes every text under the given category in one transaction.
// Ids are content hashes, so reloading the same corpus rewrites the same
// rows instead of duplicating them.
func (r *SQLiteRepo) LoadAll(ctx context.Context, category string, texts []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (id, type, text)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			text = excluded.text`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, text := range texts {
		if _, err := stmt.ExecContext(ctx, domain.Fingerprint(text), category, text); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, err
		}
	}
	_ = stmt.Close()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(texts), nil
}

// PickOne treats quote ids as a cyclic keyspace: it returns the first
// quote with id greater than seed, wrapping to the smallest id when the
// seed sorts past every stored quote.
func (r *SQLiteRepo) PickOne(ctx context.Context, seed string) (*domain.Quote, error) {
	q, err := r.pickAfter(ctx, seed)
	if errors.Is(err, sql.ErrNoRows) {
		// Wrap around.
		q, err = r.pickAfter(ctx, "")
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoQuotes
		}
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *SQLiteRepo) pickAfter(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, text
		FROM quotes
		WHERE id > ?
		ORDER BY id ASC
		LIMIT 1`,
		id,
	)

	var q domain.Quote
	if err := row.Scan(&q.ID, &q.Type, &q.Text); err != nil {
		return nil, err
	}
	return &q, nil
}
