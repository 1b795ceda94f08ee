package repos

import (
	"procurement/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Categories() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT id,name FROM categories ORDER BY name`)
	return out, err
}

// ProductRow is a product with its category denormalized for listing.
type ProductRow struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
}

func (r *CatalogRepo) Products(categoryID int64) ([]ProductRow, error) {
	out := []ProductRow{}
	q := `
	  SELECT p.id, p.name, p.category_id, c.name AS category_name
	  FROM products p JOIN categories c ON c.id = p.category_id`
	args := []any{}
	if categoryID > 0 {
		q += ` WHERE p.category_id = ?`
		args = append(args, categoryID)
	}
	q += ` ORDER BY p.name`
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *CatalogRepo) Product(id int64) (*ProductRow, error) {
	var p ProductRow
	err := r.db.Get(&p, `
	  SELECT p.id, p.name, p.category_id, c.name AS category_name
	  FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE p.id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// OfferRow is the public offer payload: offer fields plus product and
// shop context and the offer's parameter values.
type OfferRow struct {
	ID         int64           `db:"id" json:"id"`
	ExternalID int64           `db:"external_id" json:"external_id"`
	Model      string          `db:"model" json:"model,omitempty"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Price      decimal.Decimal `db:"price" json:"price"`
	PriceRRC   decimal.Decimal `db:"price_rrc" json:"price_rrc"`

	ProductID    int64  `db:"product_id" json:"product_id"`
	ProductName  string `db:"product_name" json:"product_name"`
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
	ShopID       int64  `db:"shop_id" json:"shop_id"`
	ShopName     string `db:"shop_name" json:"shop_name"`

	Parameters []ParamValue `json:"parameters,omitempty"`
}

type ParamValue struct {
	OfferID int64  `db:"offer_id" json:"-"`
	Name    string `db:"name" json:"name"`
	Value   string `db:"value" json:"value"`
}

const offerSelect = `
  SELECT o.id, o.external_id, o.model, o.quantity, o.price, o.price_rrc,
         o.product_id, p.name AS product_name,
         p.category_id, c.name AS category_name,
         o.shop_id, s.name AS shop_name
  FROM offers o
  JOIN products p ON p.id = o.product_id
  JOIN categories c ON c.id = p.category_id
  JOIN shops s ON s.id = o.shop_id`

func (r *CatalogRepo) Offers(shopID, categoryID int64) ([]OfferRow, error) {
	q := offerSelect
	where := []string{}
	args := []any{}
	if shopID > 0 {
		where = append(where, `o.shop_id = ?`)
		args = append(args, shopID)
	}
	if categoryID > 0 {
		where = append(where, `p.category_id = ?`)
		args = append(args, categoryID)
	}
	for i, w := range where {
		if i == 0 {
			q += ` WHERE ` + w
		} else {
			q += ` AND ` + w
		}
	}
	q += ` ORDER BY p.name, s.name`

	out := []OfferRow{}
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	return r.attachParameters(out)
}

func (r *CatalogRepo) Offer(id int64) (*OfferRow, error) {
	var o OfferRow
	if err := r.db.Get(&o, offerSelect+` WHERE o.id = ?`, id); err != nil {
		return nil, err
	}
	rows, err := r.attachParameters([]OfferRow{o})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *CatalogRepo) attachParameters(offers []OfferRow) ([]OfferRow, error) {
	if len(offers) == 0 {
		return offers, nil
	}
	ids := make([]int64, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	query, args, err := sqlx.In(`
	  SELECT op.offer_id, pr.name, op.value
	  FROM offer_parameters op
	  JOIN parameters pr ON pr.id = op.parameter_id
	  WHERE op.offer_id IN (?)
	  ORDER BY pr.name`, ids)
	if err != nil {
		return nil, err
	}
	var params []ParamValue
	if err := r.db.Select(&params, query, args...); err != nil {
		return nil, err
	}
	byOffer := map[int64][]ParamValue{}
	for _, p := range params {
		byOffer[p.OfferID] = append(byOffer[p.OfferID], p)
	}
	for i := range offers {
		offers[i].Parameters = byOffer[offers[i].ID]
	}
	return offers, nil
}
