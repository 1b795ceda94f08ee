package repos

import (
	"procurement/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,email,first_name,last_name,company,position,password_hash,type`

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,email,first_name,last_name,company,position,password_hash,type)
		VALUES(?,?,?,?,?,?,?,?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Company, u.Position, u.Hash, u.Type)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile changes the mutable profile fields; email and type are
// fixed at registration.
func (r *UserRepo) UpdateProfile(u *domain.User) error {
	_, err := r.DB.Exec(`
		UPDATE users SET first_name=?, last_name=?, company=?, position=?
		WHERE id=?`,
		u.FirstName, u.LastName, u.Company, u.Position, u.ID)
	return err
}

// Token returns the user's existing bearer token, if any.
func (r *UserRepo) Token(userID string) (string, error) {
	var key string
	err := r.DB.Get(&key, `SELECT key FROM tokens WHERE user_id=? LIMIT 1`, userID)
	return key, err
}

func (r *UserRepo) BindToken(key, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO tokens(key,user_id) VALUES(?,?)`, key, userID)
	return err
}

func (r *UserRepo) TokenUser(key string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT u.id,u.email,u.first_name,u.last_name,u.company,u.position,u.password_hash,u.type
		FROM tokens t
		JOIN users u ON u.id=t.user_id
		WHERE t.key=?`, key)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) RevokeToken(key string) error {
	_, err := r.DB.Exec(`DELETE FROM tokens WHERE key=?`, key)
	return err
}
