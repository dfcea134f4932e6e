package spanner

import (
	"context"

	"cloud.google.com/go/spanner"
)

type readWriteTxKey struct{}

// ReadTransaction is the read surface shared by read-write transactions
// and read-only snapshots.
type ReadTransaction interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

var (
	_ ReadTransaction = (*spanner.ReadWriteTransaction)(nil)
	_ ReadTransaction = (*spanner.ReadOnlyTransaction)(nil)
)

func withReadWriteTx(ctx context.Context, tx *spanner.ReadWriteTransaction) (context.Context, error) {
	if _, ok := ReadWriteTxFromContext(ctx); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, readWriteTxKey{}, tx), nil
}

// ReadWriteTxFromContext returns the transaction an OrderScope put on ctx.
func ReadWriteTxFromContext(ctx context.Context) (*spanner.ReadWriteTransaction, bool) {
	tx, ok := ctx.Value(readWriteTxKey{}).(*spanner.ReadWriteTransaction)
	return tx, ok && tx != nil
}

// Snapshot returns the transaction on ctx for reading, or a read-only
// snapshot from client that the caller must release with the returned func.
func Snapshot(ctx context.Context, client *spanner.Client) (ReadTransaction, func()) {
	if tx, ok := ReadWriteTxFromContext(ctx); ok {
		return tx, func() {}
	}
	ro := client.ReadOnlyTransaction()
	return ro, ro.Close
}
