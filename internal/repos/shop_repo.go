package repos

import (
	"database/sql"

	"procurement/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ShopRepo struct{ db *sqlx.DB }

func NewShopRepo(db *sqlx.DB) *ShopRepo { return &ShopRepo{db: db} }

const shopCols = `id,name,url,state,COALESCE(user_id,'') AS user_id`

func (r *ShopRepo) List() ([]domain.Shop, error) {
	out := []domain.Shop{}
	err := r.db.Select(&out, `SELECT `+shopCols+` FROM shops ORDER BY name`)
	return out, err
}

func (r *ShopRepo) ByID(id int64) (*domain.Shop, error) {
	var s domain.Shop
	if err := r.db.Get(&s, `SELECT `+shopCols+` FROM shops WHERE id=?`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// ByUser resolves the shop owned by a user; sql.ErrNoRows when the user
// has no shop yet.
func (r *ShopRepo) ByUser(userID string) (*domain.Shop, error) {
	var s domain.Shop
	if err := r.db.Get(&s, `SELECT `+shopCols+` FROM shops WHERE user_id=?`, userID); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateForUser registers a named shop owned by userID. The name is a
// unique business key; a clash surfaces as a constraint error.
func (r *ShopRepo) CreateForUser(name, url, userID string) (*domain.Shop, error) {
	res, err := r.db.Exec(`INSERT INTO shops(name,url,state,user_id) VALUES(?,?,1,?)`,
		name, url, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.ByID(id)
}

func (r *ShopRepo) SetState(shopID int64, state bool) error {
	st := 0
	if state {
		st = 1
	}
	res, err := r.db.Exec(`UPDATE shops SET state=? WHERE id=?`, st, shopID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
