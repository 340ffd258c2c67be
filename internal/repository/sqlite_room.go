package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
)

// SQLiteRoomRepo implements RoomRepo using a SQLite database.
type SQLiteRoomRepo struct {
	db db.DBTX
}

// NewSQLiteRoomRepo creates a new SQLiteRoomRepo.
func NewSQLiteRoomRepo(conn db.DBTX) *SQLiteRoomRepo {
	return &SQLiteRoomRepo{db: conn}
}

func (r *SQLiteRoomRepo) Get(ctx context.Context, userID string) (*domain.Room, error) {
	var room domain.Room
	var updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, coins, updated_at FROM rooms WHERE user_id = ?`, userID,
	).Scan(&room.UserID, &room.Coins, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning room: %w", err)
	}
	if room.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *SQLiteRoomRepo) Credit(ctx context.Context, e *domain.LedgerEntry) (*domain.Room, error) {
	ts := formatTimestamp(e.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (user_id, coins, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			coins = rooms.coins + excluded.coins,
			updated_at = excluded.updated_at`,
		e.UserID, e.Amount, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("crediting room: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, user_id, amount, reason, source_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Amount, string(e.Reason), e.SourceID, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting ledger entry: %w", err)
	}
	return r.Get(ctx, e.UserID)
}

// History returns the user's most recent grants, newest first. A limit of
// zero or less returns everything.
func (r *SQLiteRoomRepo) History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, reason, source_id, created_at
		FROM ledger_entries WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var reason, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &reason, &e.SourceID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.Reason = domain.LedgerReason(reason)
		if e.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}
	return entries, nil
}
