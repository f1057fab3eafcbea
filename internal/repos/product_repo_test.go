package repos_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"smartx/internal/domain"
	"smartx/internal/repos"
	"smartx/internal/store"
)

func sampleInput() repos.ProductInput {
	img := "products/curso/capa.png"
	return repos.ProductInput{
		Name:              "Curso de Marketing Digital!",
		Description:       "Do zero ao avançado",
		Category:          "educacao",
		Price:             197,
		OriginalPrice:     397,
		SiteURL:           "https://curso.example",
		VideoURL:          "https://video.example/v1",
		EnableAffiliates:  true,
		DefaultCommission: 40,
		Image:             &img,
		UserID:            "2",
		CreatedBy:         "Usuário Exemplo",
		Offers: []domain.Offer{
			{ID: "o-1", Name: "Básico", Price: 197, OriginalPrice: 397},
			{ID: "o-2", Name: "Completo", Price: 297, OriginalPrice: 497, IsDefault: true},
		},
	}
}

func TestProductRepo_CreateThenFind(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	in := sampleInput()

	p, res, err := r.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Persisted {
		t.Fatalf("memory-only create: got %+v", res)
	}
	if p.ID == "" || p.CreatedAt == "" || p.CreatedAt != p.UpdatedAt {
		t.Fatalf("server fields not set: %+v", p)
	}
	if p.Name != in.Name || p.Price != in.Price || *p.Image != *in.Image || p.Status != domain.ProductPending {
		t.Fatalf("fields not carried over: %+v", p)
	}
	if !reflect.DeepEqual(p.Offers, in.Offers) {
		t.Fatalf("offers changed: want %+v, got %+v", in.Offers, p.Offers)
	}

	got := r.FindByID(p.ID)
	if got == nil {
		t.Fatal("created product not found")
	}
	if !reflect.DeepEqual(*got, p) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", p, *got)
	}
}

func TestProductRepo_SlugFromName(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	p, _, err := r.Create(repos.ProductInput{Name: "Curso de Marketing Digital!"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Slug != "curso-de-marketing-digital" {
		t.Fatalf("want curso-de-marketing-digital, got %q", p.Slug)
	}
	if got := r.FindBySlug("curso-de-marketing-digital"); got == nil || got.ID != p.ID {
		t.Fatalf("FindBySlug: got %+v", got)
	}
}

func TestProductRepo_CollidingNamesGetSuffixedSlugs(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	a, _, _ := r.Create(repos.ProductInput{Name: "Mentoria"})
	b, _, _ := r.Create(repos.ProductInput{Name: "Mentória"})
	c, _, _ := r.Create(repos.ProductInput{Name: "mentoria!"})

	if a.Slug != "mentoria" || b.Slug != "mentoria-2" || c.Slug != "mentoria-3" {
		t.Fatalf("got %q %q %q", a.Slug, b.Slug, c.Slug)
	}
}

func TestProductRepo_CreateRejectsBlankName(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	if _, _, err := r.Create(repos.ProductInput{Name: "   "}); !errors.Is(err, repos.ErrInvalidProduct) {
		t.Fatalf("want ErrInvalidProduct, got %v", err)
	}
	if n := len(r.FindAll()); n != 1 {
		t.Fatalf("want only the seed product, got %d", n)
	}
}

func TestProductRepo_DefaultOfferWhenNoneGiven(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	p, _, _ := r.Create(repos.ProductInput{Name: "Ebook", Price: 27, OriginalPrice: 47})

	if len(p.Offers) != 1 {
		t.Fatalf("want 1 offer, got %d", len(p.Offers))
	}
	o := p.Offers[0]
	if o.ID == "" || !o.IsDefault || o.Price != 27 || o.OriginalPrice != 47 || o.Name != "Ebook" {
		t.Fatalf("unexpected default offer %+v", o)
	}
}

func TestProductRepo_FirstOfferBecomesDefault(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	p, _, _ := r.Create(repos.ProductInput{Name: "Combo", Offers: []domain.Offer{{Name: "A"}, {Name: "B"}}})

	if !p.Offers[0].IsDefault || p.Offers[1].IsDefault {
		t.Fatalf("want only the first offer default, got %+v", p.Offers)
	}
	if p.Offers[0].ID == "" || p.Offers[1].ID == "" || p.Offers[0].ID == p.Offers[1].ID {
		t.Fatalf("offer ids not assigned: %+v", p.Offers)
	}
}

func TestProductRepo_UpdateIsPartial(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	before, _, _ := r.Create(sampleInput())

	price := 50.0
	got, res := r.Update(before.ID, repos.ProductPatch{Price: &price})
	if got == nil || !res.Accepted {
		t.Fatalf("update failed: %+v %+v", got, res)
	}
	if got.UpdatedAt == before.UpdatedAt {
		t.Fatal("updatedAt not refreshed")
	}

	want := before
	want.Price = 50
	want.UpdatedAt = got.UpdatedAt
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("update touched other fields:\nwant %+v\ngot  %+v", want, *got)
	}
	if stored := r.FindByID(before.ID); stored == nil || stored.Price != 50 {
		t.Fatalf("update not visible: %+v", stored)
	}
}

func TestProductRepo_UpdateReplacesOffersAndKeepsSlug(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	before, _, _ := r.Create(sampleInput())

	name := "Outro Nome"
	offers := []domain.Offer{{Name: "Único", Price: 10}}
	got, _ := r.Update(before.ID, repos.ProductPatch{Name: &name, Offers: &offers})

	if got.Slug != before.Slug || got.ID != before.ID || got.CreatedAt != before.CreatedAt {
		t.Fatalf("immutable fields changed: %+v", got)
	}
	if len(got.Offers) != 1 || got.Offers[0].Name != "Único" || !got.Offers[0].IsDefault || got.Offers[0].ID == "" {
		t.Fatalf("offers not replaced: %+v", got.Offers)
	}
}

func TestProductRepo_UpdateClearsImage(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	before, _, _ := r.Create(sampleInput())

	empty := ""
	got, _ := r.Update(before.ID, repos.ProductPatch{Image: &empty})
	if got.Image != nil {
		t.Fatalf("want image cleared, got %q", *got.Image)
	}
}

func TestProductRepo_UpdateMissing(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	price := 1.0
	got, res := r.Update("nope", repos.ProductPatch{Price: &price})
	if got != nil || res.Accepted {
		t.Fatalf("want nil, got %+v %+v", got, res)
	}
}

func TestProductRepo_DeleteMissingLeavesStoreAlone(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	before := len(r.FindAll())

	ok, _ := r.Delete("does-not-exist")
	if ok {
		t.Fatal("want false for missing id")
	}
	if after := len(r.FindAll()); after != before {
		t.Fatalf("FindAll length changed %d -> %d", before, after)
	}
}

func TestProductRepo_Delete(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	p, _, _ := r.Create(repos.ProductInput{Name: "Temporário"})

	ok, res := r.Delete(p.ID)
	if !ok || !res.Accepted {
		t.Fatalf("delete failed: %v %+v", ok, res)
	}
	if r.FindByID(p.ID) != nil || r.FindBySlug(p.Slug) != nil {
		t.Fatal("deleted product still visible")
	}
}

func TestProductRepo_SeedScenario(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))

	p := r.FindBySlug("smartx-produto-exemplo")
	if p == nil || p.Name != "SMARTX - Produto Exemplo" {
		t.Fatalf("seed product not found: %+v", p)
	}
	if r.FindBySlug("nonexistent") != nil {
		t.Fatal("want nil for unknown slug")
	}
}

func TestProductRepo_FindAllIsACopy(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	all := r.FindAll()
	all[0].Name = "mutated"
	all[0].Offers[0].Price = 0

	p := r.FindByID(all[0].ID)
	if p.Name == "mutated" || p.Offers[0].Price == 0 {
		t.Fatal("FindAll leaked cache state")
	}
}

func TestProductRepo_CreateSurvivesUnwritableMedium(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(newCache(t, store.NewFileMedium(filepath.Join(blocker, "data"))))

	p, res, err := r.Create(repos.ProductInput{Name: "Sem Disco"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.Persisted {
		t.Fatalf("got %+v", res)
	}
	found := false
	for _, x := range r.FindAll() {
		if x.ID == p.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created product missing from FindAll")
	}
}

func TestProductRepo_SyncDropsUnpersistedChanges(t *testing.T) {
	m := &flakyMedium{}
	r := repos.NewProductRepo(newCache(t, m))

	kept, res, _ := r.Create(repos.ProductInput{Name: "Persistido"})
	if !res.Persisted {
		t.Fatalf("want persisted, got %+v", res)
	}

	m.setFailWrite(true)
	lost, res, _ := r.Create(repos.ProductInput{Name: "Só no cache"})
	if res.Persisted {
		t.Fatal("write should have failed")
	}
	if r.FindByID(lost.ID) == nil {
		t.Fatal("cache-only product should be visible before sync")
	}

	r.Sync()
	if r.FindByID(lost.ID) != nil {
		t.Fatal("unpersisted product survived sync")
	}
	if r.FindByID(kept.ID) == nil {
		t.Fatal("persisted product lost on sync")
	}
}

func TestProductRepo_SyncWhenNoWriteEverLanded(t *testing.T) {
	m := &flakyMedium{failWrite: true}
	r := repos.NewProductRepo(newCache(t, m))

	lost, res, _ := r.Create(repos.ProductInput{Name: "Só no cache"})
	if !res.Accepted || res.Persisted {
		t.Fatalf("want accepted but not persisted, got %+v", res)
	}

	counts := r.Sync()
	if r.FindByID(lost.ID) != nil {
		t.Fatalf("unpersisted product %s survived sync with an empty medium", lost.Slug)
	}
	if counts.Products != 1 || r.FindBySlug("smartx-produto-exemplo") == nil {
		t.Fatalf("want the seed back after sync, got %+v", counts)
	}
}

func TestProductRepo_SyncMemoryOnlyKeepsChanges(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, nil))
	p, _, _ := r.Create(repos.ProductInput{Name: "Memória"})

	if counts := r.Sync(); counts.Products != 2 {
		t.Fatalf("want 2 products after sync, got %d", counts.Products)
	}
	if r.FindByID(p.ID) == nil {
		t.Fatal("memory-only store lost product on sync")
	}
}

func TestProductRepo_ConcurrentCreates(t *testing.T) {
	r := repos.NewProductRepo(newCache(t, &flakyMedium{}))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := r.Create(repos.ProductInput{Name: "Mesmo Nome"}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	all := r.FindAll()
	if len(all) != 26 {
		t.Fatalf("want 26 products, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, p := range all {
		if seen[p.Slug] {
			t.Fatalf("duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
}
