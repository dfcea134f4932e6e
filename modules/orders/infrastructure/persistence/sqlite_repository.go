package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/0wem/weblarek/internal/platform/sqlite"
	"github.com/0wem/weblarek/modules/orders/domain"
	"github.com/0wem/weblarek/modules/shared/types"
)

// SQLiteRepository stores orders in SQLite. It joins the transaction put in
// the context by sqlite.TransactionScope.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, order *domain.Order) error {
	if _, ok := sqlite.TxFromContext(ctx); ok {
		return r.save(ctx, sqlite.Conn(ctx, r.db), order)
	}
	return sqlite.NewTransactionScope(r.db).Execute(ctx, func(ctx context.Context) error {
		return r.save(ctx, sqlite.Conn(ctx, r.db), order)
	})
}

func (r *SQLiteRepository) save(ctx context.Context, q sqlite.Querier, order *domain.Order) error {
	id := order.ID().String()
	buyer := order.Buyer()

	if _, err := q.ExecContext(ctx,
		`INSERT INTO orders (order_id, payment, email, phone, address, total, placed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, buyer.Payment.String(), buyer.Email, buyer.Phone, buyer.Address,
		order.Total().String(), order.PlacedAt().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range order.Items() {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO order_items (order_id, item_index, product_id, title, price)
			 VALUES (?, ?, ?, ?, ?)`,
			id, i, item.ProductID, item.Title, item.Price.String(),
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	q := sqlite.Conn(ctx, r.db)

	var (
		payment, email, phone, address, total string
		placedAt                              int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT payment, email, phone, address, total, placed_at FROM orders WHERE order_id = ?`,
		id.String(),
	).Scan(&payment, &email, &phone, &address, &total, &placedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("read order: %w", err)
	}

	orderTotal, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}

	items, err := r.readItems(ctx, q, id.String())
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(
		id,
		types.Profile{Payment: types.Payment(payment), Email: email, Phone: phone, Address: address},
		items,
		orderTotal,
		time.UnixMilli(placedAt).UTC(),
	), nil
}

func (r *SQLiteRepository) readItems(ctx context.Context, q sqlite.Querier, orderID string) ([]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT product_id, title, price FROM order_items WHERE order_id = ? ORDER BY item_index`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("read order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var productID, title, price string
		if err := rows.Scan(&productID, &title, &price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse item price: %w", err)
		}
		items = append(items, domain.OrderItem{ProductID: productID, Title: title, Price: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return items, nil
}

var _ domain.OrderRepository = (*SQLiteRepository)(nil)
