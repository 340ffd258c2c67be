package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/habitquest/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call inside the
// transaction numbered OnTx (1-based; 0 means every transaction). Writes
// are counted from 1 per transaction; reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	OnTx   int32
	Err    error

	txCount atomic.Int32
}

// Transactions reports how many transactions have been opened.
func (u *FailOnNthExecUoW) Transactions() int {
	return int(u.txCount.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.txCount.Add(1)
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if u.OnTx != 0 && u.OnTx != n {
			return fn(ctx, tx)
		}
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
