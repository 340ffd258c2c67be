package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// pinned to one connection with an open write transaction; callers build
// tx-scoped repositories from it and must not touch the parent *sql.DB
// until the callback returns.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs each unit on a dedicated connection inside
// BEGIN IMMEDIATE. The write lock is held from the first statement.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	conn, err := u.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Rollback and commit must run even if ctx was cancelled mid-unit.
	finish := context.WithoutCancel(ctx)
	rollback := func() error {
		_, rbErr := conn.ExecContext(finish, "ROLLBACK")
		return rbErr
	}

	defer func() {
		if p := recover(); p != nil {
			_ = rollback()
			panic(p)
		}
	}()

	if fnErr := fn(ctx, conn); fnErr != nil {
		if rbErr := rollback(); rbErr != nil {
			return errors.Join(fnErr, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return fnErr
	}

	if _, err := conn.ExecContext(finish, "COMMIT"); err != nil {
		_ = rollback()
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
