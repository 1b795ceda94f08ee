package handlers

import (
	"procurement/internal/config"
	"procurement/internal/mail"
	"procurement/internal/repos"
	"procurement/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	ContactHandler *ContactHandler
	BasketHandler  *BasketHandler
	OrderHandler   *OrderHandler
	PartnerHandler *PartnerHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	mailer := mail.New(cfg.SMTPAddr, cfg.SMTPFrom)

	userRepo := repos.NewUserRepo(db)
	shopRepo := repos.NewShopRepo(db)
	catalogRepo := repos.NewCatalogRepo(db)
	priceRepo := repos.NewPriceListRepo(db)
	contactRepo := repos.NewContactRepo(db)
	basketRepo := repos.NewBasketRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := &services.AuthService{Users: userRepo, Mailer: mailer}
	catalogSvc := services.NewCatalogService(shopRepo, catalogRepo)
	basketSvc := services.NewBasketService(basketRepo)
	orderSvc := services.NewOrderService(orderRepo, contactRepo, mailer, cfg.AdminEmail)
	partnerSvc := services.NewPartnerService(shopRepo, priceRepo)

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ContactHandler: &ContactHandler{Contacts: contactRepo},
		BasketHandler:  &BasketHandler{Basket: basketSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		PartnerHandler: &PartnerHandler{Partner: partnerSvc},
	}
}
