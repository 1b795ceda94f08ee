package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// an in-memory database exists per connection; keep the pool at one
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a sqlite unique-constraint
// failure, letting callers turn it into a business error without
// swallowing unrelated storage errors.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & tokens
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  position TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('buyer','shop')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_nocase ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS tokens(
  key TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id);

-- Shops
CREATE TABLE IF NOT EXISTS shops(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  url TEXT NOT NULL DEFAULT '',
  state INTEGER NOT NULL DEFAULT 1,
  user_id TEXT NULL UNIQUE REFERENCES users(id) ON DELETE SET NULL
);

-- Categories carry externally assigned ids; never regenerated.
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shop_categories(
  shop_id INTEGER NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  PRIMARY KEY (shop_id, category_id)
);

-- Products: identity is (name, category)
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  UNIQUE(name, category_id)
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

-- Offers: one shop's listing of a product; quantity is authoritative stock
CREATE TABLE IF NOT EXISTS offers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  shop_id INTEGER NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
  external_id INTEGER NOT NULL,
  model TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  price NUMERIC NOT NULL CHECK (price >= 0),
  price_rrc NUMERIC NOT NULL CHECK (price_rrc >= 0),
  UNIQUE(shop_id, external_id)
);
CREATE INDEX IF NOT EXISTS idx_offers_shop    ON offers(shop_id);
CREATE INDEX IF NOT EXISTS idx_offers_product ON offers(product_id);

CREATE TABLE IF NOT EXISTS parameters(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS offer_parameters(
  offer_id INTEGER NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
  parameter_id INTEGER NOT NULL REFERENCES parameters(id) ON DELETE CASCADE,
  value TEXT NOT NULL,
  PRIMARY KEY (offer_id, parameter_id)
);

-- Delivery contacts
CREATE TABLE IF NOT EXISTS contacts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  city TEXT NOT NULL,
  street TEXT NOT NULL,
  house TEXT NOT NULL DEFAULT '',
  structure TEXT NOT NULL DEFAULT '',
  building TEXT NOT NULL DEFAULT '',
  apartment TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id);

-- Orders: the 'basket' row is the user's cart; the partial unique index
-- keeps it singular per user.
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  status TEXT NOT NULL DEFAULT 'basket'
    CHECK (status IN ('basket','new','confirmed','assembled','sent','delivered','canceled')),
  contact_id INTEGER NULL REFERENCES contacts(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_basket
  ON orders(user_id) WHERE status = 'basket';
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

-- offer_id cascades: a full price-list replace drops lines that pointed at
-- the old offer rows, including lines in open baskets.
CREATE TABLE IF NOT EXISTS order_items(
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  offer_id INTEGER NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  PRIMARY KEY (order_id, offer_id)
);
`
	_, err := db.Exec(schema)
	return err
}
