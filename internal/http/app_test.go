package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"smartx/internal/config"
	"smartx/internal/http/handlers"
	"smartx/internal/store"
)

// newAPIApp wires the real routes over a fresh store. A nil medium keeps
// the store in memory.
func newAPIApp(t *testing.T, m store.Medium) (*fiber.App, *store.Cache) {
	t.Helper()
	cache := store.NewCache(store.NewHybridStore(m))
	cfg := config.Config{PublicBaseURL: "https://loja.example"}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	handlers.NewDeps(cache, cfg).Register(app)
	return app, cache
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

type writeResp[T any] struct {
	Data      T    `json:"data"`
	Accepted  bool `json:"accepted"`
	Persisted bool `json:"persisted"`
}
