package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"urbankicks/internal/catalog"
	"urbankicks/internal/checkout"
	"urbankicks/internal/config"
	"urbankicks/internal/http/handlers"
	"urbankicks/internal/persist"
	"urbankicks/internal/services"
	"urbankicks/web"
)

const testCatalog = `{
  "productos": [
    {"id": 1, "marca": "Acme", "nombre": "Runner", "precio": 59.99, "imagenes": ["a.png", "a2.png"]},
    {"id": 2, "marca": "Nova", "nombre": "Court", "precio": 80, "imagenes": ["b.png"]},
    {"id": 3, "marca": "Acme", "nombre": "Trail", "precio": 120.5, "imagenes": ["c.png"]}
  ],
  "pedidos": []
}`

type testApp struct {
	*fiber.App
	KV  *persist.MemoryKV
	sid string
}

// newTestApp builds the real route table over an in-memory store.
func newTestApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	kv := persist.NewMemoryKV()
	st := services.NewState(persist.NewGateway(kv, ""))
	st.Start(context.Background(), catalog.SourceFor(path))

	clock := time.UnixMilli(1_700_000_000_000)
	b := &checkout.Builder{Clock: func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}}
	deps := handlers.NewDeps(st, cfg, b, nil)

	app := fiber.New(fiber.Config{Views: web.Engine(), ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB
	app.Use(requestid.New())
	app.Use(handlers.CartBadge(deps.Cart))
	handlers.Routes(app, deps)
	return &testApp{App: app, KV: kv}
}

// do sends req carrying the visitor cookie and remembers any new one.
func (a *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if a.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: a.sid})
	}
	resp, err := a.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			a.sid = c.Value
		}
	}
	return resp
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postJSON(t *testing.T, path, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(t, req)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
