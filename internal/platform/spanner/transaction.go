package spanner

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/0wem/weblarek/modules/shared/transaction"
)

// PlaceOrderTag labels order placement transactions in Spanner statistics.
const PlaceOrderTag = "place-order"

var ErrNestedTransaction = errors.New("spanner: nested transaction")

// OrderScope runs order placement in one read-write transaction. Spanner
// reruns fn when the commit aborts, so every attempt gets a fresh
// transaction and fn must rebuild what it buffers: the order aggregate and
// its event buffer. Nothing fn does may leave the process before commit.
type OrderScope struct {
	client *spanner.Client
	opts   spanner.TransactionOptions
}

func NewOrderScope(client *spanner.Client) *OrderScope {
	return &OrderScope{
		client: client,
		opts:   spanner.TransactionOptions{TransactionTag: PlaceOrderTag},
	}
}

// Execute commits when fn returns nil. The context handed to fn carries the
// transaction for ReadWriteTxFromContext.
func (s *OrderScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := s.client.ReadWriteTransactionWithOptions(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		txCtx, err := withReadWriteTx(ctx, tx)
		if err != nil {
			return err
		}
		return fn(txCtx)
	}, s.opts)
	if err != nil {
		return fmt.Errorf("%s transaction: %w", PlaceOrderTag, err)
	}
	return nil
}

var _ transaction.Scope = (*OrderScope)(nil)
