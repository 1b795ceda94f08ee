package domain

import "github.com/shopspring/decimal"

type Shop struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	URL    string `db:"url" json:"url,omitempty"`
	State  bool   `db:"state" json:"state"`
	UserID string `db:"user_id" json:"-"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	CategoryID int64  `db:"category_id" json:"-"`
}

// Offer is one shop's listing of a product: price, stock quantity and the
// shop-side identifiers carried over verbatim from its price list.
type Offer struct {
	ID         int64           `db:"id" json:"id"`
	ProductID  int64           `db:"product_id" json:"-"`
	ShopID     int64           `db:"shop_id" json:"-"`
	ExternalID int64           `db:"external_id" json:"external_id"`
	Model      string          `db:"model" json:"model,omitempty"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Price      decimal.Decimal `db:"price" json:"price"`
	PriceRRC   decimal.Decimal `db:"price_rrc" json:"price_rrc"`
}

type Parameter struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type OfferParameter struct {
	OfferID     int64  `db:"offer_id" json:"-"`
	ParameterID int64  `db:"parameter_id" json:"-"`
	Name        string `db:"name" json:"name"`
	Value       string `db:"value" json:"value"`
}

type Contact struct {
	ID        int64  `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	City      string `db:"city" json:"city"`
	Street    string `db:"street" json:"street"`
	House     string `db:"house" json:"house,omitempty"`
	Structure string `db:"structure" json:"structure,omitempty"`
	Building  string `db:"building" json:"building,omitempty"`
	Apartment string `db:"apartment" json:"apartment,omitempty"`
	Phone     string `db:"phone" json:"phone"`
}

// Order statuses. StatusBasket marks the single mutable cart per user;
// every other status is immutable order history.
const (
	StatusBasket    = "basket"
	StatusNew       = "new"
	StatusConfirmed = "confirmed"
	StatusAssembled = "assembled"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"
)

type Order struct {
	ID        int64  `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	Status    string `db:"status" json:"status"`
	ContactID *int64 `db:"contact_id" json:"contact_id,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	OrderID  int64 `db:"order_id" json:"-"`
	OfferID  int64 `db:"offer_id" json:"offer_id"`
	Quantity int   `db:"quantity" json:"quantity"`
}
