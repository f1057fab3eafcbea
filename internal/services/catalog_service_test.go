package services_test

import (
	"errors"
	"strings"
	"testing"

	"smartx/internal/domain"
	"smartx/internal/repos"
	"smartx/internal/services"
	"smartx/internal/store"
)

func newRepos(t *testing.T) (*repos.ProductRepo, *repos.CheckoutRepo, *repos.SettingsRepo) {
	t.Helper()
	c := store.NewCache(store.NewHybridStore(nil))
	return repos.NewProductRepo(c), repos.NewCheckoutRepo(c), repos.NewSettingsRepo(c)
}

func TestCatalogService_CreateValidates(t *testing.T) {
	prods, _, _ := newRepos(t)
	svc := services.NewCatalogService(prods, "")

	bad := []repos.ProductInput{
		{Name: ""},
		{Name: "Curso", Price: -1},
		{Name: "Curso", DefaultCommission: 120},
		{Name: "Curso", Status: "archived"},
		{Name: "Curso", SiteURL: "ftp://x"},
		{Name: "Curso", Offers: []domain.Offer{{Name: ""}}},
	}
	for i, in := range bad {
		if _, _, err := svc.Create(in); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("case %d: want ErrInvalidInput, got %v", i, err)
		}
	}
	if n := len(prods.FindAll()); n != 1 {
		t.Fatalf("invalid input reached the store: %d products", n)
	}
}

func TestCatalogService_CreateFillsPublicLinks(t *testing.T) {
	prods, _, _ := newRepos(t)
	svc := services.NewCatalogService(prods, "https://loja.example/")

	p, res, err := svc.Create(repos.ProductInput{Name: "Curso Go", Price: 99})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatalf("got %+v", res)
	}
	if p.PublicURL != "https://loja.example/p/curso-go" {
		t.Fatalf("publicUrl: got %q", p.PublicURL)
	}
	want := "https://loja.example/checkout/curso-go?offer=" + p.Offers[0].ID
	if p.Offers[0].CheckoutURL != want {
		t.Fatalf("checkoutUrl: want %q, got %q", want, p.Offers[0].CheckoutURL)
	}
	if stored := prods.FindByID(p.ID); stored.PublicURL != p.PublicURL {
		t.Fatal("links not stored")
	}
}

func TestCatalogService_UpdateAndDeleteMissing(t *testing.T) {
	prods, _, _ := newRepos(t)
	svc := services.NewCatalogService(prods, "")

	price := 10.0
	if _, _, err := svc.Update("nope", repos.ProductPatch{Price: &price}); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	neg := -5.0
	if _, _, err := svc.Update("1", repos.ProductPatch{Price: &neg}); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Delete("nope"); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_List(t *testing.T) {
	prods, _, _ := newRepos(t)
	svc := services.NewCatalogService(prods, "")
	_, _, _ = svc.Create(repos.ProductInput{Name: "A", Category: "Educacao", UserID: "2"})
	_, _, _ = svc.Create(repos.ProductInput{Name: "B", Category: "saude", UserID: "2", Status: domain.ProductApproved})

	if got := svc.List(services.ProductFilter{UserID: "2"}); len(got) != 2 {
		t.Fatalf("by user: got %d", len(got))
	}
	if got := svc.List(services.ProductFilter{Category: "educacao"}); len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("by category: got %+v", got)
	}
	got := svc.List(services.ProductFilter{Status: domain.ProductApproved})
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "SMARTX - Produto Exemplo,B" {
		t.Fatalf("by status: got %v", names)
	}
}
