package catalog

import (
	"sort"
	"strings"
)

// All means "no categorical filtering" for Industry and Stage; it is what
// the discovery UI sends when a dropdown is left untouched.
const All = "All"

type Query struct {
	Text     string
	Industry string
	Stage    string
	Location string
	SortKey  string
	SortDesc bool
}

// Search returns the companies matching q in catalog order, then applies
// the optional single-key sort. The three predicates (substring text,
// industry, stage) are combined with AND.
func (c *Catalog) Search(q Query) []Company {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	var result []Company
	for _, co := range c.companies {
		if !matchesText(co, text) {
			continue
		}
		if !matchesCategory(co.Industry, q.Industry) {
			continue
		}
		if !matchesCategory(co.Stage, q.Stage) {
			continue
		}
		if !matchesCategory(co.Location, q.Location) {
			continue
		}
		result = append(result, co)
	}

	if q.SortKey != "" {
		sortCompanies(result, q.SortKey, q.SortDesc)
	}
	return result
}

func matchesText(co Company, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(co.Name), text) ||
		strings.Contains(strings.ToLower(co.Industry), text) ||
		strings.Contains(strings.ToLower(co.Location), text)
}

func matchesCategory(value, filter string) bool {
	return filter == "" || filter == All || value == filter
}

// SortKeys lists the columns the discovery table can sort on.
var SortKeys = []string{"id", "name", "website", "industry", "stage", "location"}

func IsSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortCompanies(companies []Company, key string, desc bool) {
	sort.SliceStable(companies, func(i, j int) bool {
		a, b := sortField(companies[i], key), sortField(companies[j], key)
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortField(co Company, key string) string {
	switch key {
	case "id":
		return co.ID
	case "name":
		return co.Name
	case "website":
		return co.Website
	case "industry":
		return co.Industry
	case "stage":
		return co.Stage
	case "location":
		return co.Location
	default:
		return ""
	}
}
