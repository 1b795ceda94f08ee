package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"procurement/internal/pricelist"
	"procurement/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func iptr(n int) *int         { return &n }
func fptr(f float64) *float64 { return &f }

// seedCatalog reconciles the canonical ACME snapshot (one hammer, stock
// 5, price 100) and returns the resulting offer id.
func seedCatalog(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	snap := &pricelist.Snapshot{
		Shop:       "ACME",
		Categories: []pricelist.Category{{ID: 1, Name: "Tools"}},
		Goods: []pricelist.Good{{
			ID: 10, Name: "Hammer", Category: 1, Model: "HM-200",
			Quantity: iptr(5), Price: fptr(100), PriceRRC: fptr(120),
		}},
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

func seedBuyer(t *testing.T, db *sqlx.DB, id, email string) {
	t.Helper()
	db.MustExec(`INSERT INTO users(id,email,password_hash,type) VALUES(?,?,'x','buyer')`, id, email)
}
