package transactor

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type sqlxTxKey struct{}

func withSqlxTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, sqlxTxKey{}, tx)
}

func sqlxTxValue(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(sqlxTxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}

// SqlxTransactor is transactor over sqlx database handle
type SqlxTransactor interface {
	Transactor
	WithinTransactionWithOptions(context.Context, func(context.Context) error, *sql.TxOptions) error
}

type sqlxTransactor struct {
	db *sqlx.DB
}

// NewSqlxTransactor builds SqlxTransactor
func NewSqlxTransactor(db *sqlx.DB) SqlxTransactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, nil)
}

func (t *sqlxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts *sql.TxOptions) (err error) {
	// nested call joins outer transaction
	if tx := sqlxTxValue(ctx); tx != nil {
		return txFunc(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		var txErr error
		if err != nil {
			txErr = tx.Rollback()
		} else {
			txErr = tx.Commit()
		}

		if txErr != nil && err == nil {
			err = txErr
		}
	}()

	err = txFunc(withSqlxTx(ctx, tx))
	return err
}

// SqlxWithinTransactionExecutor resolves query executor for context
type SqlxWithinTransactionExecutor interface {
	Executor(ctx context.Context) SqlxQueryExecutor
}

// SqlxQueryExecutor is implemented by both *sqlx.DB and *sqlx.Tx
type SqlxQueryExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type sqlxWithinTransactionExecutor struct {
	db *sqlx.DB
}

// NewSqlxWithinTransactionExecutor builds SqlxWithinTransactionExecutor
func NewSqlxWithinTransactionExecutor(db *sqlx.DB) SqlxWithinTransactionExecutor {
	return &sqlxWithinTransactionExecutor{db: db}
}

func (e *sqlxWithinTransactionExecutor) Executor(ctx context.Context) SqlxQueryExecutor {
	if tx := sqlxTxValue(ctx); tx != nil {
		return tx
	}
	return e.db
}
