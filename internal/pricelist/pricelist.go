// Package pricelist loads and decodes supplier catalog snapshots. A
// snapshot is a YAML document carrying the shop name, its categories and
// the full set of goods it currently offers.
package pricelist

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Snapshot struct {
	Shop       string     `yaml:"shop"`
	Categories []Category `yaml:"categories"`
	Goods      []Good     `yaml:"goods"`
}

type Category struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// Good uses pointer fields for the numeric requireds so a missing key is
// distinguishable from an explicit zero.
type Good struct {
	ID         int64          `yaml:"id"`
	Name       string         `yaml:"name"`
	Category   int64          `yaml:"category"`
	Model      string         `yaml:"model"`
	Quantity   *int           `yaml:"quantity"`
	Price      *float64       `yaml:"price"`
	PriceRRC   *float64       `yaml:"price_rrc"`
	Parameters map[string]any `yaml:"parameters"`
}

// Valid reports whether the good carries every required field.
func (g Good) Valid() bool {
	return g.ID > 0 && g.Name != "" &&
		g.Quantity != nil && *g.Quantity >= 0 &&
		g.Price != nil && *g.Price >= 0 &&
		g.PriceRRC != nil && *g.PriceRRC >= 0
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// maxSnapshotBytes caps remote snapshot size; a body past the cap is
// rejected rather than truncated into a half-read document.
const maxSnapshotBytes = 10 << 20

// Load reads a snapshot from a local path or an http(s) URL. Any fetch or
// decode failure aborts with a single wrapped error; nothing downstream
// has been touched at that point.
func Load(source string) (*Snapshot, error) {
	var raw []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := httpClient.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch price list: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch price list: unexpected status %s", resp.Status)
		}
		raw, err = io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes+1))
		if err != nil {
			return nil, fmt.Errorf("fetch price list: %w", err)
		}
		if len(raw) > maxSnapshotBytes {
			return nil, fmt.Errorf("fetch price list: body exceeds %d bytes", maxSnapshotBytes)
		}
	} else {
		var err error
		raw, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read price list: %w", err)
		}
	}
	return Parse(raw)
}

// Parse decodes raw YAML and checks the top-level structure. A snapshot
// without a shop name is unusable and rejected outright.
func Parse(raw []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode price list: %w", err)
	}
	if strings.TrimSpace(snap.Shop) == "" {
		return nil, fmt.Errorf("invalid price list: missing shop name")
	}
	return &snap, nil
}
