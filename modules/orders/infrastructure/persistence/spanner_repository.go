package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/0wem/weblarek/internal/platform/spanner"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

var (
	orderColumns = []string{"OrderID", "Payment", "Email", "Phone", "Address", "Total", "PlacedAt"}
	itemColumns  = []string{"OrderID", "ItemIndex", "ProductID", "Title", "Price"}
)

type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Save inserts an order. Inside an OrderScope the mutations are buffered
// on the placement transaction. A duplicate order ID fails the commit.
func (r *SpannerRepository) Save(ctx context.Context, order *domain.Order) error {
	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite(orderMutations(order))
	}

	_, err := r.client.Apply(ctx, orderMutations(order))
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func orderMutations(order *domain.Order) []*spanner.Mutation {
	orderID := order.ID().String()
	buyer := order.Buyer()

	mutations := []*spanner.Mutation{
		spanner.Insert("Orders", orderColumns, []any{
			orderID,
			buyer.Payment.String(),
			buyer.Email,
			buyer.Phone,
			buyer.Address,
			order.Total().String(),
			order.PlacedAt(),
		}),
	}
	for i, item := range order.Items() {
		mutations = append(mutations, spanner.Insert("OrderItems", itemColumns, []any{
			orderID,
			int64(i),
			item.ProductID,
			item.Title,
			item.Price.String(),
		}))
	}
	return mutations
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	// Orders and OrderItems are read from one snapshot.
	reader, release := platformspanner.Snapshot(ctx, r.client)
	defer release()

	row, err := reader.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var orderID, payment, email, phone, address, total string
	var placedAt time.Time
	if err := row.Columns(&orderID, &payment, &email, &phone, &address, &total, &placedAt); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	orderTotal, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order total: %w", err)
	}

	items, err := r.readOrderItems(ctx, reader, orderID)
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(
		id,
		types.Profile{Payment: types.Payment(payment), Email: email, Phone: phone, Address: address},
		items,
		orderTotal,
		placedAt.UTC(),
	), nil
}

func (r *SpannerRepository) readOrderItems(ctx context.Context, reader platformspanner.ReadTransaction, orderID string) ([]domain.OrderItem, error) {
	iter := reader.Read(ctx, "OrderItems",
		spanner.KeyRange{
			Start: spanner.Key{orderID},
			End:   spanner.Key{orderID},
			Kind:  spanner.ClosedClosed,
		},
		[]string{"ProductID", "Title", "Price"},
	)
	defer iter.Stop()

	var items []domain.OrderItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order items: %w", err)
		}

		var productID, title, price string
		if err := row.Columns(&productID, &title, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item price: %w", err)
		}

		items = append(items, domain.OrderItem{ProductID: productID, Title: title, Price: amount})
	}

	return items, nil
}

var _ domain.OrderRepository = (*SpannerRepository)(nil)
