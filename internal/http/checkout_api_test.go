package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"procurement/internal/pricelist"
	"procurement/internal/repos"
)

func seedOffer(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	snap, err := pricelist.Parse([]byte(acmeYAML))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repos.NewPriceListRepo(db).Sync(0, snap); err != nil {
		t.Fatal(err)
	}
	var offerID int64
	if err := db.Get(&offerID, `SELECT id FROM offers WHERE external_id=10`); err != nil {
		t.Fatal(err)
	}
	return offerID
}

func TestBasketAndCheckoutFlow(t *testing.T) {
	app, db := newTestApp(t)
	offerID := seedOffer(t, db)
	token := registerAndLogin(t, app, "buyer@example.com", "buyer")

	// fresh basket is empty
	resp, body := doJSON(t, app, "GET", "/api/v1/basket", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("basket view: %d %v", resp.StatusCode, body)
	}
	basket, _ := body["basket"].(map[string]any)
	if basket["total"] != "0" {
		t.Fatalf("fresh basket total: %v", basket)
	}

	// over stock is rejected with the available count
	resp, body = doJSON(t, app, "POST", "/api/v1/basket/items", token, map[string]any{
		"offer_id": offerID, "quantity": 6,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("over stock: %d %v", resp.StatusCode, body)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "available: 5") {
		t.Fatalf("over stock error: %v", body)
	}

	resp, body = doJSON(t, app, "POST", "/api/v1/basket/items", token, map[string]any{
		"offer_id": offerID, "quantity": 3,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, "GET", "/api/v1/basket", token, nil)
	basket, _ = body["basket"].(map[string]any)
	if basket["total"] != "300" {
		t.Fatalf("basket after add: %v", basket)
	}
	items, _ := basket["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items: %v", items)
	}

	// delivery contact
	resp, body = doJSON(t, app, "POST", "/api/v1/contacts", token, map[string]any{
		"city": "Riga", "street": "Main St", "house": "7", "phone": "+371 1234567",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("contact create: %d %v", resp.StatusCode, body)
	}
	contact, _ := body["contact"].(map[string]any)
	contactID, _ := contact["id"].(float64)
	if contactID <= 0 {
		t.Fatalf("contact id missing: %v", body)
	}

	resp, body = doJSON(t, app, "POST", "/api/v1/order/confirm", token, map[string]any{
		"contact_id": contactID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: %d %v", resp.StatusCode, body)
	}
	if body["total_price"] != "300" {
		t.Fatalf("confirm payload: %v", body)
	}
	orderID, _ := body["order_id"].(float64)

	// basket starts over, the order shows in history
	resp, body = doJSON(t, app, "GET", "/api/v1/basket", token, nil)
	basket, _ = body["basket"].(map[string]any)
	if basket["total"] != "0" {
		t.Fatalf("basket after checkout: %v", basket)
	}

	resp, body = doJSON(t, app, "GET", "/api/v1/orders", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: %d %v", resp.StatusCode, body)
	}
	orders, _ := body["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("history: %v", body)
	}
	first, _ := orders[0].(map[string]any)
	if first["status"] != "new" {
		t.Fatalf("order status: %v", first)
	}

	resp, body = doJSON(t, app, "GET", "/api/v1/orders/"+itoa(int64(orderID)), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("order get: %d %v", resp.StatusCode, body)
	}
	orderItems, _ := body["items"].([]any)
	if len(orderItems) != 1 {
		t.Fatalf("order items: %v", body)
	}
}

func TestCheckoutWithoutBasket(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "buyer@example.com", "buyer")

	resp, body := doJSON(t, app, "POST", "/api/v1/order/confirm", token, map[string]any{
		"contact_id": 1,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown contact: %d %v", resp.StatusCode, body)
	}
}

func TestBasketIsBuyerOnly(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "supplier@example.com", "shop")

	resp, _ := doJSON(t, app, "GET", "/api/v1/basket", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("shop user basket: %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "GET", "/api/v1/basket", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous basket: %d", resp.StatusCode)
	}
}

func TestBasketItemUpdateAndRemove(t *testing.T) {
	app, db := newTestApp(t)
	offerID := seedOffer(t, db)
	token := registerAndLogin(t, app, "buyer@example.com", "buyer")

	doJSON(t, app, "POST", "/api/v1/basket/items", token, map[string]any{
		"offer_id": offerID, "quantity": 2,
	})

	path := "/api/v1/basket/items/" + itoa(offerID)
	resp, body := doJSON(t, app, "PUT", path, token, map[string]any{"quantity": 5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: %d %v", resp.StatusCode, body)
	}
	resp, body = doJSON(t, app, "PUT", path, token, map[string]any{"quantity": 6})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("update over stock: %d %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, app, "DELETE", path, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove: %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "DELETE", path, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("remove again: %d", resp.StatusCode)
	}
}
