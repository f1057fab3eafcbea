package repos

import (
	"strings"

	"github.com/google/uuid"

	"smartx/internal/domain"
	"smartx/internal/store"
)

type SettingsInput struct {
	ProductID      string                  `json:"productId"`
	PaymentMethods []string                `json:"paymentMethods"`
	Tracking       domain.TrackingSettings `json:"tracking"`
	OrderBumps     []domain.OrderBump      `json:"orderBumps"`
	Upsells        []domain.Upsell         `json:"upsells"`
	Checkout       domain.CheckoutBehavior `json:"checkout"`
}

type SettingsRepo struct {
	cache      *store.Cache
	newShortID func() string
}

func NewSettingsRepo(cache *store.Cache) *SettingsRepo {
	return &SettingsRepo{cache: cache, newShortID: newShortIDGenerator()}
}

// Save upserts the settings of in.ProductID, assigning ids to new order bumps
// and upsells.
func (r *SettingsRepo) Save(in SettingsInput) (domain.ProductSettings, store.Result, error) {
	pid := strings.TrimSpace(in.ProductID)
	if pid == "" {
		return domain.ProductSettings{}, store.Result{}, ErrMissingProductID
	}

	var saved domain.ProductSettings
	res := r.cache.Apply(func(s *domain.Snapshot) store.Op {
		now := r.cache.Now()
		ps := domain.ProductSettings{
			ID:             uuid.NewString(),
			ProductID:      pid,
			PaymentMethods: append([]string{}, in.PaymentMethods...),
			Tracking:       in.Tracking,
			OrderBumps:     append([]domain.OrderBump{}, in.OrderBumps...),
			Upsells:        append([]domain.Upsell{}, in.Upsells...),
			Checkout:       in.Checkout,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		for i := range ps.OrderBumps {
			if ps.OrderBumps[i].ID == "" {
				ps.OrderBumps[i].ID = r.newShortID()
			}
		}
		for i := range ps.Upsells {
			if ps.Upsells[i].ID == "" {
				ps.Upsells[i].ID = r.newShortID()
			}
		}
		for _, existing := range s.ProductSettings {
			if existing.ProductID == pid {
				ps.ID = existing.ID
				ps.CreatedAt = existing.CreatedAt
				break
			}
		}
		saved = ps.Clone()
		return upsertSettings(ps)
	})
	return saved, res, nil
}

func (r *SettingsRepo) FindByProductID(productID string) *domain.ProductSettings {
	var out *domain.ProductSettings
	r.cache.View(func(s *domain.Snapshot) {
		for _, ps := range s.ProductSettings {
			if ps.ProductID == productID {
				cp := ps.Clone()
				out = &cp
				return
			}
		}
	})
	return out
}
