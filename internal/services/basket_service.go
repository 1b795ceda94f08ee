package services

import (
	"errors"

	"procurement/internal/repos"

	"github.com/shopspring/decimal"
)

var ErrBadQuantity = errors.New("quantity must be positive")

type BasketService struct {
	Baskets *repos.BasketRepo
}

func NewBasketService(baskets *repos.BasketRepo) *BasketService {
	return &BasketService{Baskets: baskets}
}

type BasketView struct {
	ID    int64              `json:"id"`
	Items []repos.BasketLine `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

func (s *BasketService) View(userID string) (BasketView, error) {
	basketID, err := s.Baskets.Ensure(userID)
	if err != nil {
		return BasketView{}, err
	}
	items, total, err := s.Baskets.Lines(basketID)
	if err != nil {
		return BasketView{}, err
	}
	return BasketView{ID: basketID, Items: items, Total: total}, nil
}

func (s *BasketService) Add(userID string, offerID int64, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}
	basketID, err := s.Baskets.Ensure(userID)
	if err != nil {
		return err
	}
	return s.Baskets.AddItem(basketID, offerID, qty)
}

func (s *BasketService) Update(userID string, offerID int64, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}
	basketID, err := s.Baskets.Ensure(userID)
	if err != nil {
		return err
	}
	return s.Baskets.SetItemQuantity(basketID, offerID, qty)
}

func (s *BasketService) Remove(userID string, offerID int64) error {
	basketID, err := s.Baskets.Ensure(userID)
	if err != nil {
		return err
	}
	return s.Baskets.RemoveItem(basketID, offerID)
}
