package services

import (
	"procurement/internal/domain"
	"procurement/internal/repos"
)

type CatalogService struct {
	Shops   *repos.ShopRepo
	Catalog *repos.CatalogRepo
}

func NewCatalogService(shops *repos.ShopRepo, catalog *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Shops: shops, Catalog: catalog}
}

func (s *CatalogService) ListShops() ([]domain.Shop, error) { return s.Shops.List() }

func (s *CatalogService) GetShop(id int64) (*domain.Shop, error) { return s.Shops.ByID(id) }

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Catalog.Categories()
}

func (s *CatalogService) ListProducts(categoryID int64) ([]repos.ProductRow, error) {
	return s.Catalog.Products(categoryID)
}

func (s *CatalogService) GetProduct(id int64) (*repos.ProductRow, error) {
	return s.Catalog.Product(id)
}

func (s *CatalogService) ListOffers(shopID, categoryID int64) ([]repos.OfferRow, error) {
	return s.Catalog.Offers(shopID, categoryID)
}

func (s *CatalogService) GetOffer(id int64) (*repos.OfferRow, error) {
	return s.Catalog.Offer(id)
}
