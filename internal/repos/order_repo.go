package repos

import (
	"database/sql"
	"fmt"

	"procurement/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBasket = fmt.Errorf("basket is empty")
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Confirm places the user's basket: every line is re-validated against the
// offer's current stock inside the transaction, then the basket flips to
// 'new' with the delivery contact attached. Any failing line rejects the
// whole checkout and leaves the basket untouched. Stock itself is not
// decremented; offer quantity stays authoritative until the next price
// list upload.
func (r *OrderRepo) Confirm(userID string, contactID int64) (int64, decimal.Decimal, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, decimal.Zero, err
	}
	defer func() { _ = tx.Rollback() }()

	var basketID int64
	err = tx.Get(&basketID, `SELECT id FROM orders WHERE user_id=? AND status='basket'`, userID)
	if err == sql.ErrNoRows {
		return 0, decimal.Zero, ErrEmptyBasket
	}
	if err != nil {
		return 0, decimal.Zero, err
	}

	type line struct {
		ProductName string          `db:"product_name"`
		Quantity    int             `db:"quantity"`
		Stock       int             `db:"stock"`
		Price       decimal.Decimal `db:"price"`
	}
	var lines []line
	if err := tx.Select(&lines, `
	  SELECT p.name AS product_name, oi.quantity, o.quantity AS stock, o.price
	  FROM order_items oi
	  JOIN offers o ON o.id = oi.offer_id
	  JOIN products p ON p.id = o.product_id
	  WHERE oi.order_id = ?`, basketID); err != nil {
		return 0, decimal.Zero, err
	}
	if len(lines) == 0 {
		return 0, decimal.Zero, ErrEmptyBasket
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity > l.Stock {
			return 0, decimal.Zero, &StockError{
				Product:   l.ProductName,
				Available: l.Stock,
				Requested: l.Quantity,
			}
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	if _, err := tx.Exec(`UPDATE orders SET status='new', contact_id=? WHERE id=?`,
		contactID, basketID); err != nil {
		return 0, decimal.Zero, err
	}
	if err := tx.Commit(); err != nil {
		return 0, decimal.Zero, err
	}
	return basketID, total, nil
}

type OrderItemRow struct {
	OfferID     int64           `db:"offer_id" json:"offer_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	ShopName    string          `db:"shop_name" json:"shop_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// ListByUser returns order history, excluding the basket.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, user_id, status, contact_id, created_at
		FROM orders
		WHERE user_id=? AND status <> 'basket'
		ORDER BY datetime(created_at) DESC, id DESC`, userID)
	return out, err
}

// Get fetches one placed order with its lines; owner-scoped, basket
// excluded.
func (r *OrderRepo) Get(orderID int64, userID string) (*domain.Order, []OrderItemRow, error) {
	var o domain.Order
	err := r.db.Get(&o, `
		SELECT id, user_id, status, contact_id, created_at
		FROM orders
		WHERE id=? AND user_id=? AND status <> 'basket'`, orderID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := r.items(orderID)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *OrderRepo) items(orderID int64) ([]OrderItemRow, error) {
	items := []OrderItemRow{}
	err := r.db.Select(&items, `
	  SELECT oi.offer_id, p.name AS product_name, s.name AS shop_name,
	         oi.quantity, o.price
	  FROM order_items oi
	  JOIN offers o ON o.id = oi.offer_id
	  JOIN products p ON p.id = o.product_id
	  JOIN shops s ON s.id = o.shop_id
	  WHERE oi.order_id = ?
	  ORDER BY p.name`, orderID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Subtotal = items[i].Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
	}
	return items, nil
}
