package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed companies.json
var companiesJSON []byte

type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Stage       string `json:"stage"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Catalog is the static, read-only set of companies the service exposes.
// It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	companies []Company
	byID      map[string]int
}

func Load() (*Catalog, error) {
	var companies []Company
	if err := json.Unmarshal(companiesJSON, &companies); err != nil {
		return nil, fmt.Errorf("catalog: decode embedded data: %w", err)
	}

	byID := make(map[string]int, len(companies))
	for i, c := range companies {
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate company id %q", c.ID)
		}
		byID[c.ID] = i
	}

	return &Catalog{companies: companies, byID: byID}, nil
}

// All returns the full catalog in its original order. Callers must not
// modify the returned slice.
func (c *Catalog) All() []Company {
	return c.companies
}

func (c *Catalog) FindByID(id string) (Company, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Company{}, false
	}
	return c.companies[i], true
}

func (c *Catalog) Len() int {
	return len(c.companies)
}

// Industries returns the distinct industry values in first-seen order.
func (c *Catalog) Industries() []string {
	return c.distinct(func(co Company) string { return co.Industry })
}

// Stages returns the distinct stage values in first-seen order.
func (c *Catalog) Stages() []string {
	return c.distinct(func(co Company) string { return co.Stage })
}

func (c *Catalog) distinct(key func(Company) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, co := range c.companies {
		k := key(co)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
