package repos

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// StockError reports a mutation that would exceed an offer's available
// quantity. The mutation is rejected whole; no partial accept. Checkout
// sets Product to name the first offending line.
type StockError struct {
	Product   string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("insufficient stock for %q, available: %d, in basket: %d",
			e.Product, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock, available: %d", e.Available)
}

type BasketRepo struct{ db *sqlx.DB }

func NewBasketRepo(db *sqlx.DB) *BasketRepo { return &BasketRepo{db: db} }

// Ensure returns the user's basket order id, creating the basket lazily on
// first access. The partial unique index keeps it singular per user.
func (r *BasketRepo) Ensure(userID string) (int64, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM orders WHERE user_id=? AND status='basket'`, userID)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := r.db.Exec(`INSERT INTO orders(user_id,status) VALUES(?,'basket')`, userID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type BasketLine struct {
	OfferID     int64           `db:"offer_id" json:"offer_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	ShopName    string          `db:"shop_name" json:"shop_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// Lines returns the basket's items with exact money math: subtotals and
// the total are multiplied in decimal, never in sqlite's float arithmetic.
func (r *BasketRepo) Lines(basketID int64) ([]BasketLine, decimal.Decimal, error) {
	lines := []BasketLine{}
	err := r.db.Select(&lines, `
	  SELECT oi.offer_id, p.name AS product_name, s.name AS shop_name,
	         oi.quantity, o.price
	  FROM order_items oi
	  JOIN offers o ON o.id = oi.offer_id
	  JOIN products p ON p.id = o.product_id
	  JOIN shops s ON s.id = o.shop_id
	  WHERE oi.order_id = ?
	  ORDER BY p.name`, basketID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		total = total.Add(lines[i].Subtotal)
	}
	return lines, total, nil
}

// AddItem inserts a line or bumps an existing one. The stock check runs
// against the offer's quantity in the same transaction, so the resulting
// line can never exceed stock as read at commit time.
func (r *BasketRepo) AddItem(basketID, offerID int64, qty int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stock int
	if err := tx.Get(&stock, `SELECT quantity FROM offers WHERE id=?`, offerID); err != nil {
		return err
	}

	var have int
	err = tx.Get(&have, `SELECT quantity FROM order_items WHERE order_id=? AND offer_id=?`, basketID, offerID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	want := have + qty
	if want > stock {
		return &StockError{Available: stock, Requested: want}
	}

	if _, err := tx.Exec(`
		INSERT INTO order_items(order_id,offer_id,quantity) VALUES(?,?,?)
		ON CONFLICT(order_id,offer_id) DO UPDATE SET quantity=excluded.quantity`,
		basketID, offerID, want); err != nil {
		return err
	}
	return tx.Commit()
}

// SetItemQuantity replaces a line's quantity, subject to the same stock
// ceiling. The line is left unchanged on rejection.
func (r *BasketRepo) SetItemQuantity(basketID, offerID int64, qty int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stock int
	if err := tx.Get(&stock, `SELECT quantity FROM offers WHERE id=?`, offerID); err != nil {
		return err
	}
	if qty > stock {
		return &StockError{Available: stock, Requested: qty}
	}

	res, err := tx.Exec(`UPDATE order_items SET quantity=? WHERE order_id=? AND offer_id=?`,
		qty, basketID, offerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *BasketRepo) RemoveItem(basketID, offerID int64) error {
	res, err := r.db.Exec(`DELETE FROM order_items WHERE order_id=? AND offer_id=?`, basketID, offerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
