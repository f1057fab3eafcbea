package repos

import (
	"strings"

	"smartx/internal/domain"
	"smartx/internal/store"
)

// UserRepo is read-only; user accounts are managed outside this store.
type UserRepo struct{ cache *store.Cache }

func NewUserRepo(cache *store.Cache) *UserRepo { return &UserRepo{cache: cache} }

func (r *UserRepo) FindByEmail(email string) *domain.User {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) FindByID(id string) *domain.User {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepo) FindAll() []domain.User {
	var out []domain.User
	r.cache.View(func(s *domain.Snapshot) {
		out = make([]domain.User, len(s.Users))
		for i, u := range s.Users {
			out[i] = u.Clone()
		}
	})
	return out
}

func (r *UserRepo) find(match func(domain.User) bool) *domain.User {
	var out *domain.User
	r.cache.View(func(s *domain.Snapshot) {
		for _, u := range s.Users {
			if match(u) {
				c := u.Clone()
				out = &c
				return
			}
		}
	})
	return out
}
