package handlers

import (
	"urbankicks/internal/checkout"
	"urbankicks/internal/config"
	"urbankicks/internal/events"
	"urbankicks/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
	Cart           *services.CartService
	Admin          AdminCreds
}

// NewDeps wires services over the shared state. builder and pub may be nil.
func NewDeps(st *services.State, cfg config.Config, builder *checkout.Builder, pub events.Publisher) *Deps {
	catalogSvc := services.NewCatalogService(st)
	cartSvc := services.NewCartService(st)
	orderSvc := services.NewOrderService(st, builder, pub)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc},
		Cart:           cartSvc,
		Admin:          AdminCreds{User: cfg.AdminUser, PasswordHash: cfg.AdminPasswordHash},
	}
}
