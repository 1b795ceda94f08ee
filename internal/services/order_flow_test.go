package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"procurement/internal/domain"
	"procurement/internal/repos"
	"procurement/internal/services"
)

func orderFixture(t *testing.T) (*sqlx.DB, *services.BasketService, *services.OrderService, *domain.User, int64, int64) {
	t.Helper()
	db := memdb(t)
	offerID := seedCatalog(t, db)
	seedBuyer(t, db, "u-buyer", "buyer@example.com")
	db.MustExec(`INSERT INTO contacts(id,user_id,city,street,phone) VALUES(1,'u-buyer','Riga','Main St','+371 1234567')`)

	basketSvc := services.NewBasketService(repos.NewBasketRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db), repos.NewContactRepo(db), nil, "")
	buyer := &domain.User{ID: "u-buyer", Email: "buyer@example.com", Type: domain.RoleBuyer}
	return db, basketSvc, orderSvc, buyer, offerID, 1
}

func TestCheckoutFlow(t *testing.T) {
	db, basket, orders, buyer, offerID, contactID := orderFixture(t)

	if err := basket.Add(buyer.ID, offerID, 3); err != nil {
		t.Fatal(err)
	}
	before, _ := basket.View(buyer.ID)

	orderID, total, err := orders.Confirm(buyer, contactID)
	if err != nil {
		t.Fatal(err)
	}
	if orderID != before.ID {
		t.Fatalf("placed order id %d should be the basket id %d", orderID, before.ID)
	}
	if total.String() != "300" {
		t.Fatalf("total = %s", total)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM orders WHERE id=?`, orderID); err != nil {
		t.Fatal(err)
	}
	if status != domain.StatusNew {
		t.Fatalf("status = %q", status)
	}

	// next cart access creates a fresh, empty basket
	after, err := basket.View(buyer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.ID == orderID || len(after.Items) != 0 {
		t.Fatalf("expected a fresh empty basket, got %+v", after)
	}

	// history shows the placed order and never the basket
	history, err := orders.History(buyer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != orderID {
		t.Fatalf("bad history: %+v", history)
	}
	if history[0].ContactID == nil || *history[0].ContactID != contactID {
		t.Fatalf("contact not attached: %+v", history[0])
	}
}

func TestCheckoutEmptyBasket(t *testing.T) {
	_, basket, orders, buyer, _, contactID := orderFixture(t)

	if _, _, err := orders.Confirm(buyer, contactID); err != repos.ErrEmptyBasket {
		t.Fatalf("no basket at all: want ErrEmptyBasket, got %v", err)
	}

	// lazily created but empty basket is still rejected
	if _, err := basket.View(buyer.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := orders.Confirm(buyer, contactID); err != repos.ErrEmptyBasket {
		t.Fatalf("empty basket: want ErrEmptyBasket, got %v", err)
	}
}

func TestCheckoutForeignContactRejected(t *testing.T) {
	db, basket, orders, buyer, offerID, _ := orderFixture(t)
	seedBuyer(t, db, "u-other", "other@example.com")
	db.MustExec(`INSERT INTO contacts(id,user_id,city,street,phone) VALUES(2,'u-other','Riga','Elm St','+371 7654321')`)

	if err := basket.Add(buyer.ID, offerID, 1); err != nil {
		t.Fatal(err)
	}
	if _, _, err := orders.Confirm(buyer, 2); err != services.ErrContactNotFound {
		t.Fatalf("want ErrContactNotFound, got %v", err)
	}
}

// Stock may shrink between add and checkout (a new price list landed).
// The whole checkout is rejected and the basket keeps its status.
func TestCheckoutRejectsStaleStock(t *testing.T) {
	db, basket, orders, buyer, offerID, contactID := orderFixture(t)

	if err := basket.Add(buyer.ID, offerID, 4); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`UPDATE offers SET quantity=2 WHERE id=?`, offerID)

	_, _, err := orders.Confirm(buyer, contactID)
	var stockErr *repos.StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want StockError, got %v", err)
	}
	if stockErr.Product != "Hammer" || stockErr.Available != 2 || stockErr.Requested != 4 {
		t.Fatalf("bad stock error: %+v", stockErr)
	}
	if !strings.Contains(err.Error(), `"Hammer"`) || !strings.Contains(err.Error(), "available: 2") {
		t.Fatalf("error should name the offending item and stock: %v", err)
	}

	var status string
	_ = db.Get(&status, `SELECT status FROM orders WHERE user_id=? ORDER BY id LIMIT 1`, buyer.ID)
	if status != domain.StatusBasket {
		t.Fatalf("basket must be untouched, status = %q", status)
	}
	view, _ := basket.View(buyer.ID)
	if len(view.Items) != 1 || view.Items[0].Quantity != 4 {
		t.Fatalf("basket lines must be untouched: %+v", view.Items)
	}
}
