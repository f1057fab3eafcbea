package handlers

import (
	"smartx/internal/config"
	"smartx/internal/repos"
	"smartx/internal/services"
	"smartx/internal/store"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CheckoutHandler *CheckoutHandler
	UserHandler     *UserHandler
	StoreHandler    *StoreHandler
	PageHandler     *PageHandler
}

func NewDeps(cache *store.Cache, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(cache)
	checkoutRepo := repos.NewCheckoutRepo(cache)
	settingsRepo := repos.NewSettingsRepo(cache)
	userRepo := repos.NewUserRepo(cache)

	catalogSvc := services.NewCatalogService(prodRepo, cfg.PublicBaseURL)
	checkoutSvc := services.NewCheckoutService(checkoutRepo, settingsRepo, prodRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc},
		UserHandler:     &UserHandler{Users: userRepo},
		StoreHandler:    &StoreHandler{Cache: cache},
		PageHandler:     &PageHandler{Checkout: checkoutSvc},
	}
}
