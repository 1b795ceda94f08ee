package domain

// User roles. A shop user owns at most one Shop and may upload price
// lists; buyers own baskets and orders.
const (
	RoleBuyer = "buyer"
	RoleShop  = "shop"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name,omitempty"`
	LastName  string `db:"last_name" json:"last_name,omitempty"`
	Company   string `db:"company" json:"company,omitempty"`
	Position  string `db:"position" json:"position,omitempty"`
	Hash      string `db:"password_hash" json:"-"`
	Type      string `db:"type" json:"type"`
}

func (u *User) IsBuyer() bool { return u.Type == RoleBuyer }
func (u *User) IsShop() bool  { return u.Type == RoleShop }
