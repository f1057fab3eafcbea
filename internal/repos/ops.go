package repos

import (
	"smartx/internal/domain"
	"smartx/internal/store"
)

// The ops below are keyed so that replaying them on the store snapshot gives
// the same record even if that snapshot has drifted from the cache.

func upsertProduct(p domain.Product) store.Op {
	return func(s *domain.Snapshot) {
		for i := range s.Products {
			if s.Products[i].ID == p.ID {
				s.Products[i] = p.Clone()
				return
			}
		}
		s.Products = append(s.Products, p.Clone())
	}
}

func deleteProduct(id string) store.Op {
	return func(s *domain.Snapshot) {
		for i := range s.Products {
			if s.Products[i].ID == id {
				s.Products = append(s.Products[:i:i], s.Products[i+1:]...)
				return
			}
		}
	}
}

func upsertCheckout(c domain.CheckoutConfig) store.Op {
	return func(s *domain.Snapshot) {
		for i := range s.Checkouts {
			if s.Checkouts[i].ProductID == c.ProductID {
				s.Checkouts[i] = c.Clone()
				return
			}
		}
		s.Checkouts = append(s.Checkouts, c.Clone())
	}
}

func upsertSettings(ps domain.ProductSettings) store.Op {
	return func(s *domain.Snapshot) {
		for i := range s.ProductSettings {
			if s.ProductSettings[i].ProductID == ps.ProductID {
				s.ProductSettings[i] = ps.Clone()
				return
			}
		}
		s.ProductSettings = append(s.ProductSettings, ps.Clone())
	}
}
