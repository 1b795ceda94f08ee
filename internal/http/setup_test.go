package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"procurement/internal/config"
	apphttp "procurement/internal/http"
	"procurement/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return apphttp.NewApp(db, config.Config{}), db
}

// doJSON issues a request against the app and decodes the JSON reply.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	decodeBody(t, resp, &out)
	return resp, out
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("non-JSON reply: %v", err)
	}
}

// registerAndLogin creates an account through the API and returns its
// bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/user/register", "", map[string]any{
		"email": email, "password": "correct horse", "password2": "correct horse",
		"first_name": "Anna", "type": role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: %d %v", email, resp.StatusCode, body)
	}
	resp, body = doJSON(t, app, "POST", "/api/v1/user/login", "", map[string]any{
		"email": email, "password": "correct horse",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: %d %v", email, resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", email, body)
	}
	return token
}
