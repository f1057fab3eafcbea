package services

import (
	"fmt"

	"smartx/internal/domain"
	"smartx/internal/repos"
	"smartx/internal/store"
	"smartx/internal/validate"
)

type CheckoutService struct {
	Checkouts *repos.CheckoutRepo
	Settings  *repos.SettingsRepo
	Prods     *repos.ProductRepo
}

func NewCheckoutService(checkouts *repos.CheckoutRepo, settings *repos.SettingsRepo, prods *repos.ProductRepo) *CheckoutService {
	return &CheckoutService{Checkouts: checkouts, Settings: settings, Prods: prods}
}

func (s *CheckoutService) SaveCheckout(in repos.CheckoutInput) (domain.CheckoutConfig, store.Result, error) {
	if s.Prods.FindByID(in.ProductID) == nil {
		return domain.CheckoutConfig{}, store.Result{}, ErrProductNotFound
	}
	if !validate.PaymentMethodList(in.PaymentMethods) {
		return domain.CheckoutConfig{}, store.Result{}, invalid("paymentMethods")
	}
	return s.Checkouts.Save(in)
}

func (s *CheckoutService) SaveSettings(in repos.SettingsInput) (domain.ProductSettings, store.Result, error) {
	if s.Prods.FindByID(in.ProductID) == nil {
		return domain.ProductSettings{}, store.Result{}, ErrProductNotFound
	}
	if !validate.PaymentMethodList(in.PaymentMethods) {
		return domain.ProductSettings{}, store.Result{}, invalid("paymentMethods")
	}
	for i, b := range in.OrderBumps {
		if !validate.Price(b.Price) {
			return domain.ProductSettings{}, store.Result{}, invalid(fmt.Sprintf("orderBumps[%d].price", i))
		}
	}
	for i, u := range in.Upsells {
		if !validate.Price(u.Price) || !validate.URL(u.RedirectURL) {
			return domain.ProductSettings{}, store.Result{}, invalid(fmt.Sprintf("upsells[%d]", i))
		}
	}
	if in.Checkout.CountdownMinutes < 0 {
		return domain.ProductSettings{}, store.Result{}, invalid("checkout.countdownMinutes")
	}
	return s.Settings.Save(in)
}

func (s *CheckoutService) Checkout(productID string) *domain.CheckoutConfig {
	return s.Checkouts.FindByProductID(productID)
}

func (s *CheckoutService) ProductSettings(productID string) *domain.ProductSettings {
	return s.Settings.FindByProductID(productID)
}

// Page is everything the public product page needs.
type Page struct {
	Product  domain.Product
	Offer    domain.Offer
	Checkout *domain.CheckoutConfig
	Settings *domain.ProductSettings
}

// Page resolves a slug into the product, the selected offer (the default
// one when offerID is empty or unknown) and its checkout setup. Only
// approved products are public.
func (s *CheckoutService) Page(sl, offerID string) (Page, error) {
	p := s.Prods.FindBySlug(sl)
	if p == nil || p.Status != domain.ProductApproved {
		return Page{}, ErrProductNotFound
	}
	offer, _ := p.DefaultOffer()
	for _, o := range p.Offers {
		if offerID != "" && o.ID == offerID {
			offer = o
			break
		}
	}
	return Page{
		Product:  *p,
		Offer:    offer,
		Checkout: s.Checkouts.FindByProductID(p.ID),
		Settings: s.Settings.FindByProductID(p.ID),
	}, nil
}
