package repos

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"smartx/internal/domain"
	"smartx/internal/slug"
	"smartx/internal/store"
)

var ErrInvalidProduct = errors.New("product name is required")

// ProductInput carries the caller-owned fields of a new product.
type ProductInput struct {
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Category          string               `json:"category"`
	Price             float64              `json:"price"`
	OriginalPrice     float64              `json:"originalPrice"`
	SiteURL           string               `json:"siteUrl"`
	VideoURL          string               `json:"videoUrl"`
	EnableAffiliates  bool                 `json:"enableAffiliates"`
	DefaultCommission float64              `json:"defaultCommission"`
	Image             *string              `json:"image"`
	Status            domain.ProductStatus `json:"status"`
	UserID            string               `json:"userId"`
	CreatedBy         string               `json:"createdBy"`
	Offers            []domain.Offer       `json:"offers"`
	PublicURL         string               `json:"publicUrl"`
}

// ProductPatch is a shallow partial update: nil fields are left alone and a
// non-nil Offers replaces the whole list. A pointer to "" clears the image.
type ProductPatch struct {
	Name              *string               `json:"name"`
	Description       *string               `json:"description"`
	Category          *string               `json:"category"`
	Price             *float64              `json:"price"`
	OriginalPrice     *float64              `json:"originalPrice"`
	SiteURL           *string               `json:"siteUrl"`
	VideoURL          *string               `json:"videoUrl"`
	EnableAffiliates  *bool                 `json:"enableAffiliates"`
	DefaultCommission *float64              `json:"defaultCommission"`
	Image             *string               `json:"image"`
	Status            *domain.ProductStatus `json:"status"`
	UserID            *string               `json:"userId"`
	CreatedBy         *string               `json:"createdBy"`
	Offers            *[]domain.Offer       `json:"offers"`
	PublicURL         *string               `json:"publicUrl"`
}

func (pt ProductPatch) apply(p *domain.Product) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&p.Name, pt.Name)
	setString(&p.Description, pt.Description)
	setString(&p.Category, pt.Category)
	setFloat(&p.Price, pt.Price)
	setFloat(&p.OriginalPrice, pt.OriginalPrice)
	setString(&p.SiteURL, pt.SiteURL)
	setString(&p.VideoURL, pt.VideoURL)
	if pt.EnableAffiliates != nil {
		p.EnableAffiliates = *pt.EnableAffiliates
	}
	setFloat(&p.DefaultCommission, pt.DefaultCommission)
	if pt.Image != nil {
		if *pt.Image == "" {
			p.Image = nil
		} else {
			img := *pt.Image
			p.Image = &img
		}
	}
	if pt.Status != nil {
		p.Status = *pt.Status
	}
	setString(&p.UserID, pt.UserID)
	setString(&p.CreatedBy, pt.CreatedBy)
	if pt.Offers != nil {
		p.Offers = append([]domain.Offer(nil), (*pt.Offers)...)
	}
	setString(&p.PublicURL, pt.PublicURL)
}

type ProductRepo struct {
	cache      *store.Cache
	newShortID func() string
}

func NewProductRepo(cache *store.Cache) *ProductRepo {
	return &ProductRepo{cache: cache, newShortID: newShortIDGenerator()}
}

// Create stores a new product with a fresh id, a slug derived from its name
// (suffixed when already taken) and normalized offers.
func (r *ProductRepo) Create(in ProductInput) (domain.Product, store.Result, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, store.Result{}, ErrInvalidProduct
	}
	status := in.Status
	if status == "" {
		status = domain.ProductPending
	}

	var created domain.Product
	res := r.cache.Apply(func(s *domain.Snapshot) store.Op {
		now := r.cache.Now()
		p := domain.Product{
			ID:                uuid.NewString(),
			Name:              name,
			Description:       in.Description,
			Category:          in.Category,
			Price:             in.Price,
			OriginalPrice:     in.OriginalPrice,
			SiteURL:           in.SiteURL,
			VideoURL:          in.VideoURL,
			EnableAffiliates:  in.EnableAffiliates,
			DefaultCommission: in.DefaultCommission,
			Image:             in.Image,
			Status:            status,
			UserID:            in.UserID,
			CreatedBy:         in.CreatedBy,
			Offers:            append([]domain.Offer(nil), in.Offers...),
			PublicURL:         in.PublicURL,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		base := slug.Make(name)
		if base == "" {
			base = "produto"
		}
		p.Slug = slug.Unique(base, func(c string) bool { return indexBySlug(s.Products, c) >= 0 })
		normalizeOffers(&p, r.newShortID)
		created = p.Clone()
		return upsertProduct(p)
	})
	return created, res, nil
}

func (r *ProductRepo) FindByID(id string) *domain.Product {
	var out *domain.Product
	r.cache.View(func(s *domain.Snapshot) {
		if i := indexByID(s.Products, id); i >= 0 {
			p := s.Products[i].Clone()
			out = &p
		}
	})
	return out
}

// FindBySlug returns the first product with the slug, in insertion order.
func (r *ProductRepo) FindBySlug(sl string) *domain.Product {
	var out *domain.Product
	r.cache.View(func(s *domain.Snapshot) {
		if i := indexBySlug(s.Products, sl); i >= 0 {
			p := s.Products[i].Clone()
			out = &p
		}
	})
	return out
}

func (r *ProductRepo) FindAll() []domain.Product {
	var out []domain.Product
	r.cache.View(func(s *domain.Snapshot) {
		out = make([]domain.Product, len(s.Products))
		for i, p := range s.Products {
			out[i] = p.Clone()
		}
	})
	return out
}

// Update merges patch over the product and refreshes UpdatedAt. id, slug and
// createdAt never change. Returns nil when the product does not exist.
func (r *ProductRepo) Update(id string, patch ProductPatch) (*domain.Product, store.Result) {
	var updated *domain.Product
	res := r.cache.Apply(func(s *domain.Snapshot) store.Op {
		i := indexByID(s.Products, id)
		if i < 0 {
			return nil
		}
		p := s.Products[i].Clone()
		patch.apply(&p)
		if patch.Offers != nil {
			normalizeOffers(&p, r.newShortID)
		}
		p.UpdatedAt = r.cache.Now()
		cp := p.Clone()
		updated = &cp
		return upsertProduct(p)
	})
	return updated, res
}

func (r *ProductRepo) Delete(id string) (bool, store.Result) {
	found := false
	res := r.cache.Apply(func(s *domain.Snapshot) store.Op {
		if indexByID(s.Products, id) < 0 {
			return nil
		}
		found = true
		return deleteProduct(id)
	})
	return found, res
}

// Sync reloads the shared cache from the store.
func (r *ProductRepo) Sync() domain.Counts { return r.cache.Sync() }

func indexByID(ps []domain.Product, id string) int {
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}

func indexBySlug(ps []domain.Product, sl string) int {
	for i := range ps {
		if ps[i].Slug == sl {
			return i
		}
	}
	return -1
}

// normalizeOffers guarantees at least one offer, an id on every offer and
// exactly one default.
func normalizeOffers(p *domain.Product, newID func() string) {
	if len(p.Offers) == 0 {
		p.Offers = []domain.Offer{{
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Description:   p.Description,
		}}
	}
	def := 0
	for i := range p.Offers {
		if p.Offers[i].IsDefault {
			def = i
			break
		}
	}
	for i := range p.Offers {
		if p.Offers[i].ID == "" {
			p.Offers[i].ID = newID()
		}
		p.Offers[i].IsDefault = i == def
	}
}
