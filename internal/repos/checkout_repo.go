package repos

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"smartx/internal/domain"
	"smartx/internal/store"
)

var ErrMissingProductID = errors.New("productId is required")

type CheckoutInput struct {
	ProductID      string            `json:"productId"`
	Elements       []json.RawMessage `json:"elements"`
	Settings       json.RawMessage   `json:"settings"`
	PaymentMethods []string          `json:"paymentMethods"`
}

type CheckoutRepo struct{ cache *store.Cache }

func NewCheckoutRepo(cache *store.Cache) *CheckoutRepo { return &CheckoutRepo{cache: cache} }

// Save upserts the checkout of in.ProductID. An existing config keeps its id
// and createdAt; everything else is overwritten.
func (r *CheckoutRepo) Save(in CheckoutInput) (domain.CheckoutConfig, store.Result, error) {
	pid := strings.TrimSpace(in.ProductID)
	if pid == "" {
		return domain.CheckoutConfig{}, store.Result{}, ErrMissingProductID
	}

	var saved domain.CheckoutConfig
	res := r.cache.Apply(func(s *domain.Snapshot) store.Op {
		now := r.cache.Now()
		cfg := domain.CheckoutConfig{
			ID:             uuid.NewString(),
			ProductID:      pid,
			Elements:       append([]json.RawMessage{}, in.Elements...),
			Settings:       in.Settings,
			PaymentMethods: append([]string{}, in.PaymentMethods...),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		for _, existing := range s.Checkouts {
			if existing.ProductID == pid {
				cfg.ID = existing.ID
				cfg.CreatedAt = existing.CreatedAt
				break
			}
		}
		saved = cfg.Clone()
		return upsertCheckout(cfg)
	})
	return saved, res, nil
}

func (r *CheckoutRepo) FindByProductID(productID string) *domain.CheckoutConfig {
	var out *domain.CheckoutConfig
	r.cache.View(func(s *domain.Snapshot) {
		for _, c := range s.Checkouts {
			if c.ProductID == productID {
				cp := c.Clone()
				out = &cp
				return
			}
		}
	})
	return out
}

func (r *CheckoutRepo) FindAll() []domain.CheckoutConfig {
	var out []domain.CheckoutConfig
	r.cache.View(func(s *domain.Snapshot) {
		out = make([]domain.CheckoutConfig, len(s.Checkouts))
		for i, c := range s.Checkouts {
			out[i] = c.Clone()
		}
	})
	return out
}
