package store

import "smartx/internal/domain"

const seedTime = "2024-01-01T00:00:00.000Z"

// Seed is the snapshot a store starts from when no durable document exists:
// one example product and two example users.
func Seed() domain.Snapshot {
	return domain.Snapshot{
		Products: []domain.Product{{
			ID:                "1",
			Name:              "SMARTX - Produto Exemplo",
			Description:       "Produto de exemplo da plataforma SMARTX",
			Category:          "digital",
			Price:             97,
			OriginalPrice:     197,
			EnableAffiliates:  true,
			DefaultCommission: 50,
			Status:            domain.ProductApproved,
			UserID:            "1",
			CreatedBy:         "Admin SMARTX",
			Offers: []domain.Offer{{
				ID:            "offer-1",
				Name:          "Oferta Principal",
				Price:         97,
				OriginalPrice: 197,
				Description:   "Acesso completo",
				IsDefault:     true,
			}},
			Slug:      "smartx-produto-exemplo",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		}},
		Users: []domain.User{
			{
				ID:        "1",
				Email:     "admin@smartx.com",
				Name:      "Admin SMARTX",
				Role:      domain.RoleAdmin,
				Status:    domain.UserApproved,
				CreatedAt: seedTime,
				UpdatedAt: seedTime,
			},
			{
				ID:        "2",
				Email:     "usuario@smartx.com",
				Name:      "Usuário Exemplo",
				Role:      domain.RoleUser,
				Status:    domain.UserPending,
				CreatedAt: seedTime,
				UpdatedAt: seedTime,
			},
		},
	}
}
