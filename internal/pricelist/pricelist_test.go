package pricelist

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
shop: ACME
categories:
  - id: 1
    name: Tools
  - id: 2
    name: Fasteners
goods:
  - id: 10
    name: Hammer
    category: 1
    model: HM-200
    quantity: 5
    price: 100
    price_rrc: 120
    parameters:
      "Weight (kg)": 0.9
      "Handle": wood
`

func TestParseValid(t *testing.T) {
	snap, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Shop != "ACME" {
		t.Fatalf("shop = %q", snap.Shop)
	}
	if len(snap.Categories) != 2 || snap.Categories[0].ID != 1 || snap.Categories[0].Name != "Tools" {
		t.Fatalf("bad categories: %+v", snap.Categories)
	}
	if len(snap.Goods) != 1 {
		t.Fatalf("want 1 good, got %d", len(snap.Goods))
	}
	g := snap.Goods[0]
	if !g.Valid() {
		t.Fatalf("good should be valid: %+v", g)
	}
	if g.ID != 10 || g.Category != 1 || g.Model != "HM-200" {
		t.Fatalf("bad good: %+v", g)
	}
	if *g.Quantity != 5 || *g.Price != 100 || *g.PriceRRC != 120 {
		t.Fatalf("bad numbers: %+v", g)
	}
	if len(g.Parameters) != 2 {
		t.Fatalf("want 2 parameters, got %v", g.Parameters)
	}
}

func TestParseMissingShop(t *testing.T) {
	if _, err := Parse([]byte("categories: []\ngoods: []\n")); err == nil {
		t.Fatal("expected error for missing shop name")
	}
	if _, err := Parse([]byte("shop: \"\"\n")); err == nil {
		t.Fatal("expected error for empty shop name")
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("shop: [unterminated")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseNullCategoryID(t *testing.T) {
	snap, err := Parse([]byte("shop: X\ncategories:\n  - id: null\n    name: Ghost\n"))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Categories[0].ID != 0 {
		t.Fatalf("null id should decode to 0, got %d", snap.Categories[0].ID)
	}
}

func TestGoodMissingFieldsInvalid(t *testing.T) {
	snap, err := Parse([]byte(`
shop: X
goods:
  - id: 1
    name: NoQuantity
    category: 1
    price: 10
    price_rrc: 12
  - id: 2
    category: 1
    quantity: 1
    price: 10
    price_rrc: 12
`))
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range snap.Goods {
		if g.Valid() {
			t.Fatalf("good %d should be invalid: %+v", i, g)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/pricelist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Shop != "ACME" {
		t.Fatalf("shop = %q", snap.Shop)
	}
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "boom") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleYAML))
	}))
	defer srv.Close()

	snap, err := Load(srv.URL + "/pricelist.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Shop != "ACME" || len(snap.Goods) != 1 {
		t.Fatalf("bad snapshot: %+v", snap)
	}

	if _, err := Load(srv.URL + "/boom"); err == nil {
		t.Fatal("expected error for upstream 500")
	}
}

func TestLoadFromURLRejectsOversizeBody(t *testing.T) {
	big := make([]byte, maxSnapshotBytes+1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(big)
	}))
	defer srv.Close()

	_, err := Load(srv.URL + "/huge.yaml")
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("oversize body must be rejected, not truncated: %v", err)
	}
}
