package repos

import (
	"database/sql"
	"fmt"

	"procurement/internal/pricelist"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// PriceListRepo reconciles a shop's catalog against a supplier snapshot.
// A shop's offer set is always treated as a complete upload: existing
// offers are dropped and rebuilt, never patched.
type PriceListRepo struct{ db *sqlx.DB }

func NewPriceListRepo(db *sqlx.DB) *PriceListRepo { return &PriceListRepo{db: db} }

type SyncResult struct {
	ShopID     int64  `json:"-"`
	ShopName   string `json:"shop"`
	Categories int    `json:"categories"`
	Imported   int    `json:"goods"`
	Attempted  int    `json:"goods_total"`
}

// Sync applies a snapshot inside one transaction. shopID binds the upload
// to an existing shop (partner update); with shopID 0 the shop is found
// or created by the snapshot's name (batch import). Per-good failures are
// skipped; a crash mid-run rolls everything back.
func (r *PriceListRepo) Sync(shopID int64, snap *pricelist.Snapshot) (SyncResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return SyncResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	shopID, err = r.resolveShop(tx, shopID, snap.Shop)
	if err != nil {
		return SyncResult{}, err
	}

	categories, err := r.syncCategories(tx, shopID, snap.Categories)
	if err != nil {
		return SyncResult{}, err
	}

	// Full replace: offer_parameters and basket lines referencing the old
	// offers go with them.
	if _, err := tx.Exec(`DELETE FROM offers WHERE shop_id=?`, shopID); err != nil {
		return SyncResult{}, err
	}

	imported := 0
	for _, g := range snap.Goods {
		if !g.Valid() {
			continue
		}
		if !categories[g.Category] {
			continue
		}
		if err := r.importGood(tx, shopID, g); err != nil {
			// per-item failure: record and move on
			continue
		}
		imported++
	}

	res := SyncResult{
		ShopID:     shopID,
		ShopName:   snap.Shop,
		Categories: len(categories),
		Imported:   imported,
		Attempted:  len(snap.Goods),
	}
	if err := tx.Commit(); err != nil {
		return SyncResult{}, err
	}
	return res, nil
}

// resolveShop updates the bound shop's name in place, or finds/creates a
// shop by name when the sync is unbound. Names are unique business keys;
// a rename onto an existing name surfaces as a constraint error.
func (r *PriceListRepo) resolveShop(tx *sqlx.Tx, shopID int64, name string) (int64, error) {
	if shopID > 0 {
		var current string
		if err := tx.Get(&current, `SELECT name FROM shops WHERE id=?`, shopID); err != nil {
			return 0, fmt.Errorf("shop %d: %w", shopID, err)
		}
		if current != name {
			if _, err := tx.Exec(`UPDATE shops SET name=? WHERE id=?`, name, shopID); err != nil {
				return 0, err
			}
		}
		return shopID, nil
	}

	var id int64
	err := tx.Get(&id, `SELECT id FROM shops WHERE name=?`, name)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := tx.Exec(`INSERT INTO shops(name,state) VALUES(?,1)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// syncCategories upserts snapshot categories by their external ids, links
// them to the shop and returns the set of recognized ids. Entries missing
// id or name are skipped without aborting.
func (r *PriceListRepo) syncCategories(tx *sqlx.Tx, shopID int64, cats []pricelist.Category) (map[int64]bool, error) {
	known := map[int64]bool{}
	for _, c := range cats {
		if c.ID <= 0 || c.Name == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO categories(id,name) VALUES(?,?)
			ON CONFLICT(id) DO UPDATE SET name=excluded.name`, c.ID, c.Name); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`
			INSERT INTO shop_categories(shop_id,category_id) VALUES(?,?)
			ON CONFLICT(shop_id,category_id) DO NOTHING`, shopID, c.ID); err != nil {
			return nil, err
		}
		known[c.ID] = true
	}
	return known, nil
}

func (r *PriceListRepo) importGood(tx *sqlx.Tx, shopID int64, g pricelist.Good) error {
	productID, err := findOrCreateProduct(tx, g.Name, g.Category)
	if err != nil {
		return err
	}

	price := decimal.NewFromFloat(*g.Price)
	priceRRC := decimal.NewFromFloat(*g.PriceRRC)
	res, err := tx.Exec(`
		INSERT INTO offers(product_id,shop_id,external_id,model,quantity,price,price_rrc)
		VALUES(?,?,?,?,?,?,?)`,
		productID, shopID, g.ID, g.Model, *g.Quantity, price.String(), priceRRC.String())
	if err != nil {
		return err
	}
	offerID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for name, value := range g.Parameters {
		if name == "" {
			continue
		}
		paramID, err := findOrCreateParameter(tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO offer_parameters(offer_id,parameter_id,value) VALUES(?,?,?)
			ON CONFLICT(offer_id,parameter_id) DO UPDATE SET value=excluded.value`,
			offerID, paramID, fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}

// Product identity is (name, category); the unique constraint is the
// source of truth, the probing select just avoids the common round trip.
func findOrCreateProduct(tx *sqlx.Tx, name string, categoryID int64) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM products WHERE name=? AND category_id=?`, name, categoryID)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := tx.Exec(`
		INSERT INTO products(name,category_id) VALUES(?,?)
		ON CONFLICT(name,category_id) DO NOTHING`, name, categoryID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return res.LastInsertId()
	}
	err = tx.Get(&id, `SELECT id FROM products WHERE name=? AND category_id=?`, name, categoryID)
	return id, err
}

// Parameters are global and deduplicated by name.
func findOrCreateParameter(tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM parameters WHERE name=?`, name)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := tx.Exec(`
		INSERT INTO parameters(name) VALUES(?)
		ON CONFLICT(name) DO NOTHING`, name)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return res.LastInsertId()
	}
	err = tx.Get(&id, `SELECT id FROM parameters WHERE name=?`, name)
	return id, err
}
