package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/0wem/weblarek/modules/shared/transaction"
)

// ErrNestedTransaction is returned when a scope is entered with a
// transaction already in the context.
var ErrNestedTransaction = errors.New("nested sqlite transaction")

// Querier is the statement surface shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// TxFromContext extracts the transaction placed by TransactionScope.
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// Conn returns the context transaction, or db when there is none.
func Conn(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// TransactionScope runs functions inside a database/sql transaction.
type TransactionScope struct {
	db *sql.DB
}

func NewTransactionScope(db *sql.DB) *TransactionScope {
	return &TransactionScope{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise.
func (s *TransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return ErrNestedTransaction
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ transaction.Scope = (*TransactionScope)(nil)
