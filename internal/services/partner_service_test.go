package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"procurement/internal/repos"
	"procurement/internal/services"
)

const acmeYAML = `
shop: ACME
categories:
  - id: 1
    name: Tools
goods:
  - id: 10
    category: 1
    model: HM-200
    name: Hammer
    price: 100
    price_rrc: 120
    quantity: 5
    parameters:
      Weight: 0.8
`

func partnerFixture(t *testing.T) (*sqlx.DB, *services.PartnerService) {
	t.Helper()
	db := memdb(t)
	return db, services.NewPartnerService(repos.NewShopRepo(db), repos.NewPriceListRepo(db))
}

func seedSupplier(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	db.MustExec(`INSERT INTO users(id,email,password_hash,type) VALUES(?,?,'x','shop')`,
		id, id+"@example.com")
}

func TestFirstUploadCreatesBoundShop(t *testing.T) {
	db, partner := partnerFixture(t)
	seedSupplier(t, db, "u-shop")

	res, err := partner.UpdateFromBytes("u-shop", []byte(acmeYAML))
	if err != nil {
		t.Fatal(err)
	}
	if res.ShopName != "ACME" || res.Imported != 1 {
		t.Fatalf("bad summary: %+v", res)
	}

	shop, err := repos.NewShopRepo(db).ByUser("u-shop")
	if err != nil {
		t.Fatal(err)
	}
	if shop.Name != "ACME" || !shop.State {
		t.Fatalf("shop not bound: %+v", shop)
	}

	// second upload reuses the bound shop
	res2, err := partner.UpdateFromBytes("u-shop", []byte(acmeYAML))
	if err != nil {
		t.Fatal(err)
	}
	if res2.ShopID != shop.ID {
		t.Fatalf("rebound to a different shop: %d vs %d", res2.ShopID, shop.ID)
	}
	var shops int
	db.Get(&shops, `SELECT COUNT(*) FROM shops`)
	if shops != 1 {
		t.Fatalf("shops = %d", shops)
	}
}

func TestUploadRejectsTakenShopName(t *testing.T) {
	db, partner := partnerFixture(t)
	seedSupplier(t, db, "u-first")
	seedSupplier(t, db, "u-second")

	if _, err := partner.UpdateFromBytes("u-first", []byte(acmeYAML)); err != nil {
		t.Fatal(err)
	}
	if _, err := partner.UpdateFromBytes("u-second", []byte(acmeYAML)); err != services.ErrShopNameTaken {
		t.Fatalf("a second supplier must not claim the same shop name: got %v", err)
	}
}

func TestSetStateRequiresShop(t *testing.T) {
	db, partner := partnerFixture(t)
	seedSupplier(t, db, "u-shop")

	if err := partner.SetState("u-shop", false); err != services.ErrNoShop {
		t.Fatalf("want ErrNoShop, got %v", err)
	}

	if _, err := partner.UpdateFromBytes("u-shop", []byte(acmeYAML)); err != nil {
		t.Fatal(err)
	}
	if err := partner.SetState("u-shop", false); err != nil {
		t.Fatal(err)
	}
	var state int
	db.Get(&state, `SELECT state FROM shops WHERE user_id='u-shop'`)
	if state != 0 {
		t.Fatalf("state = %d", state)
	}
}
