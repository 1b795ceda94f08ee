package repos

import (
	"database/sql"

	"procurement/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = `id,user_id,city,street,house,structure,building,apartment,phone`

func (r *ContactRepo) ListByUser(userID string) ([]domain.Contact, error) {
	out := []domain.Contact{}
	err := r.db.Select(&out, `SELECT `+contactCols+` FROM contacts WHERE user_id=? ORDER BY id`, userID)
	return out, err
}

// ByID is owner-scoped: a contact belonging to someone else reads as
// not found.
func (r *ContactRepo) ByID(id int64, userID string) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.Get(&c, `SELECT `+contactCols+` FROM contacts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Create(c *domain.Contact) error {
	res, err := r.db.Exec(`
		INSERT INTO contacts(user_id,city,street,house,structure,building,apartment,phone)
		VALUES(?,?,?,?,?,?,?,?)`,
		c.UserID, c.City, c.Street, c.House, c.Structure, c.Building, c.Apartment, c.Phone)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *ContactRepo) Update(c *domain.Contact) error {
	res, err := r.db.Exec(`
		UPDATE contacts SET city=?,street=?,house=?,structure=?,building=?,apartment=?,phone=?
		WHERE id=? AND user_id=?`,
		c.City, c.Street, c.House, c.Structure, c.Building, c.Apartment, c.Phone, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ContactRepo) Delete(id int64, userID string) error {
	res, err := r.db.Exec(`DELETE FROM contacts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
