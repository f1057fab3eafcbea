package services

import (
	"errors"
	"fmt"
	"strings"

	"smartx/internal/domain"
	"smartx/internal/repos"
	"smartx/internal/store"
	"smartx/internal/validate"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProductNotFound = errors.New("product not found")
)

type CatalogService struct {
	Prods *repos.ProductRepo
	// PublicBaseURL, when set, is used to fill publicUrl and offer checkout
	// links of new products.
	PublicBaseURL string
}

func NewCatalogService(prods *repos.ProductRepo, publicBaseURL string) *CatalogService {
	return &CatalogService{Prods: prods, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func invalid(field string) error { return fmt.Errorf("%w: %s", ErrInvalidInput, field) }

func checkOffers(offers []domain.Offer) error {
	for i, o := range offers {
		if _, ok := validate.Name(o.Name); !ok {
			return invalid(fmt.Sprintf("offers[%d].name", i))
		}
		if !validate.Price(o.Price) || !validate.Price(o.OriginalPrice) {
			return invalid(fmt.Sprintf("offers[%d].price", i))
		}
		if !validate.URL(o.CheckoutURL) {
			return invalid(fmt.Sprintf("offers[%d].checkoutUrl", i))
		}
	}
	return nil
}

func (s *CatalogService) checkInput(in repos.ProductInput) error {
	if _, ok := validate.Name(in.Name); !ok {
		return invalid("name")
	}
	if !validate.Price(in.Price) || !validate.Price(in.OriginalPrice) {
		return invalid("price")
	}
	if !validate.Percent(in.DefaultCommission) {
		return invalid("defaultCommission")
	}
	if in.Status != "" && !validate.ProductStatus(in.Status) {
		return invalid("status")
	}
	if !validate.URL(in.SiteURL) || !validate.URL(in.VideoURL) || !validate.URL(in.PublicURL) {
		return invalid("url")
	}
	return checkOffers(in.Offers)
}

func (s *CatalogService) checkPatch(p repos.ProductPatch) error {
	if p.Name != nil {
		if _, ok := validate.Name(*p.Name); !ok {
			return invalid("name")
		}
	}
	for _, v := range []*float64{p.Price, p.OriginalPrice} {
		if v != nil && !validate.Price(*v) {
			return invalid("price")
		}
	}
	if p.DefaultCommission != nil && !validate.Percent(*p.DefaultCommission) {
		return invalid("defaultCommission")
	}
	if p.Status != nil && !validate.ProductStatus(*p.Status) {
		return invalid("status")
	}
	for _, v := range []*string{p.SiteURL, p.VideoURL, p.PublicURL} {
		if v != nil && !validate.URL(*v) {
			return invalid("url")
		}
	}
	if p.Offers != nil {
		return checkOffers(*p.Offers)
	}
	return nil
}

// Create validates and stores a product. With a public base URL configured,
// the product page and offer checkout links are filled in a follow-up write.
func (s *CatalogService) Create(in repos.ProductInput) (domain.Product, store.Result, error) {
	if err := s.checkInput(in); err != nil {
		return domain.Product{}, store.Result{}, err
	}
	p, res, err := s.Prods.Create(in)
	if err != nil || s.PublicBaseURL == "" {
		return p, res, err
	}

	patch := repos.ProductPatch{}
	if p.PublicURL == "" {
		u := s.PublicBaseURL + "/p/" + p.Slug
		patch.PublicURL = &u
	}
	offers := append([]domain.Offer(nil), p.Offers...)
	linked := false
	for i := range offers {
		if offers[i].CheckoutURL == "" {
			offers[i].CheckoutURL = s.PublicBaseURL + "/checkout/" + p.Slug + "?offer=" + offers[i].ID
			linked = true
		}
	}
	if linked {
		patch.Offers = &offers
	}
	if patch.PublicURL == nil && patch.Offers == nil {
		return p, res, nil
	}
	if up, upRes := s.Prods.Update(p.ID, patch); up != nil {
		return *up, upRes, nil
	}
	return p, res, nil
}

func (s *CatalogService) Update(id string, patch repos.ProductPatch) (domain.Product, store.Result, error) {
	if err := s.checkPatch(patch); err != nil {
		return domain.Product{}, store.Result{}, err
	}
	p, res := s.Prods.Update(id, patch)
	if p == nil {
		return domain.Product{}, res, ErrProductNotFound
	}
	return *p, res, nil
}

func (s *CatalogService) Delete(id string) (store.Result, error) {
	ok, res := s.Prods.Delete(id)
	if !ok {
		return res, ErrProductNotFound
	}
	return res, nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p := s.Prods.FindByID(id)
	if p == nil {
		return domain.Product{}, ErrProductNotFound
	}
	return *p, nil
}

func (s *CatalogService) GetBySlug(sl string) (domain.Product, error) {
	p := s.Prods.FindBySlug(sl)
	if p == nil {
		return domain.Product{}, ErrProductNotFound
	}
	return *p, nil
}

type ProductFilter struct {
	Status   domain.ProductStatus
	UserID   string
	Category string
}

// List returns the products matching every non-empty filter field, in
// insertion order.
func (s *CatalogService) List(f ProductFilter) []domain.Product {
	all := s.Prods.FindAll()
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		out = append(out, p)
	}
	return out
}
