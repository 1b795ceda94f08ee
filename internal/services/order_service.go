package services

import (
	"database/sql"
	"errors"
	"fmt"

	"procurement/internal/domain"
	"procurement/internal/mail"
	"procurement/internal/repos"

	"github.com/shopspring/decimal"
)

var ErrContactNotFound = errors.New("contact not found")

type OrderService struct {
	Orders     *repos.OrderRepo
	Contacts   *repos.ContactRepo
	Mailer     mail.Mailer
	AdminEmail string
}

func NewOrderService(orders *repos.OrderRepo, contacts *repos.ContactRepo, mailer mail.Mailer, adminEmail string) *OrderService {
	return &OrderService{Orders: orders, Contacts: contacts, Mailer: mailer, AdminEmail: adminEmail}
}

// Confirm places the buyer's basket against the given delivery contact.
// The contact must belong to the buyer; the stock re-check and the status
// flip happen atomically in the repo. Notifications go out after the
// commit and never fail the request.
func (s *OrderService) Confirm(u *domain.User, contactID int64) (int64, decimal.Decimal, error) {
	if _, err := s.Contacts.ByID(contactID, u.ID); err != nil {
		if err == sql.ErrNoRows {
			return 0, decimal.Zero, ErrContactNotFound
		}
		return 0, decimal.Zero, err
	}

	orderID, total, err := s.Orders.Confirm(u.ID, contactID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	if s.Mailer != nil {
		_ = s.Mailer.Send(u.Email,
			fmt.Sprintf("Order #%d placed", orderID),
			fmt.Sprintf("Your order #%d for %s has been accepted.", orderID, total))
		if s.AdminEmail != "" {
			_ = s.Mailer.Send(s.AdminEmail,
				fmt.Sprintf("New order #%d", orderID),
				fmt.Sprintf("Order #%d from %s, total %s.", orderID, u.Email, total))
		}
	}
	return orderID, total, nil
}

func (s *OrderService) History(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) Get(orderID int64, userID string) (*domain.Order, []repos.OrderItemRow, error) {
	return s.Orders.Get(orderID, userID)
}
