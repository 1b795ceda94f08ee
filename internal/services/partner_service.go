package services

import (
	"database/sql"
	"errors"

	"procurement/internal/pricelist"
	"procurement/internal/repos"
)

var (
	ErrNoShop        = errors.New("no shop registered for this user")
	ErrShopNameTaken = errors.New("shop name is already taken")
)

// PartnerService covers the supplier-facing operations: price-list
// uploads (bound to the caller's shop) and the accept-orders toggle. The
// batch import path reuses the same reconciliation.
type PartnerService struct {
	Shops  *repos.ShopRepo
	Prices *repos.PriceListRepo
}

func NewPartnerService(shops *repos.ShopRepo, prices *repos.PriceListRepo) *PartnerService {
	return &PartnerService{Shops: shops, Prices: prices}
}

func (s *PartnerService) shopFor(userID string) (int64, error) {
	shop, err := s.Shops.ByUser(userID)
	if err == sql.ErrNoRows {
		return 0, ErrNoShop
	}
	if err != nil {
		return 0, err
	}
	return shop.ID, nil
}

// shopForSnapshot resolves the caller's shop, creating one named after
// the snapshot on the caller's first upload.
func (s *PartnerService) shopForSnapshot(userID string, snap *pricelist.Snapshot) (int64, error) {
	shopID, err := s.shopFor(userID)
	if err == nil {
		return shopID, nil
	}
	if err != ErrNoShop {
		return 0, err
	}
	shop, err := s.Shops.CreateForUser(snap.Shop, "", userID)
	if repos.IsUniqueViolation(err) {
		return 0, ErrShopNameTaken
	}
	if err != nil {
		return 0, err
	}
	return shop.ID, nil
}

// UpdateFromSource fetches a snapshot by path or URL and reconciles the
// caller's shop against it.
func (s *PartnerService) UpdateFromSource(userID, source string) (repos.SyncResult, error) {
	snap, err := pricelist.Load(source)
	if err != nil {
		return repos.SyncResult{}, err
	}
	shopID, err := s.shopForSnapshot(userID, snap)
	if err != nil {
		return repos.SyncResult{}, err
	}
	return s.Prices.Sync(shopID, snap)
}

// UpdateFromBytes reconciles from an uploaded snapshot body.
func (s *PartnerService) UpdateFromBytes(userID string, raw []byte) (repos.SyncResult, error) {
	snap, err := pricelist.Parse(raw)
	if err != nil {
		return repos.SyncResult{}, err
	}
	shopID, err := s.shopForSnapshot(userID, snap)
	if err != nil {
		return repos.SyncResult{}, err
	}
	return s.Prices.Sync(shopID, snap)
}

// ImportBatch is the CLI entry point: the shop is resolved or created
// from the snapshot itself.
func (s *PartnerService) ImportBatch(source string) (repos.SyncResult, error) {
	snap, err := pricelist.Load(source)
	if err != nil {
		return repos.SyncResult{}, err
	}
	return s.Prices.Sync(0, snap)
}

// SetState flips the accept-orders flag on the caller's shop.
func (s *PartnerService) SetState(userID string, state bool) error {
	shopID, err := s.shopFor(userID)
	if err != nil {
		return err
	}
	return s.Shops.SetState(shopID, state)
}
