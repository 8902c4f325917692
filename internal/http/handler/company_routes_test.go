package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/sqlite"
	"dealscope/internal/domain/sqlite/repository"
	"dealscope/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyAPI(t *testing.T) *echo.Echo {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	svc := service.NewCompanyService(cat, repository.NewNoteRepository(db), validator.New())
	routes := NewCompanyRoute(svc)

	e := echo.New()
	e.GET("/api/companies", routes.GetCompanies)
	e.GET("/api/companies/meta", routes.GetMeta)
	e.GET("/api/companies/:id", routes.GetCompany)
	e.GET("/api/companies/:id/notes", routes.GetNote)
	e.PUT("/api/companies/:id/notes", routes.SaveNote)
	return e
}

func TestGetCompaniesFiltersAndSorts(t *testing.T) {
	e := newCompanyAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/companies?industry=Fintech&sort=name&dir=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp contract.CompanyListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.Total)
	for _, c := range resp.Companies {
		assert.Equal(t, "Fintech", c.Industry)
	}
	for i := 1; i < len(resp.Companies); i++ {
		assert.GreaterOrEqual(t, resp.Companies[i-1].Name, resp.Companies[i].Name)
	}
}

func TestGetCompaniesRejectsUnknownSortKey(t *testing.T) {
	e := newCompanyAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/companies?sort=valuation", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMeta(t *testing.T) {
	e := newCompanyAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/companies/meta", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta contract.CatalogMetaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.NotEmpty(t, meta.Industries)
	assert.NotEmpty(t, meta.Stages)
}

func TestCompanyDetailAndNotes(t *testing.T) {
	e := newCompanyAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/companies/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/companies/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/companies/1/notes", `{"body":"nice margins"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/companies/1/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var note contract.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, "nice margins", note.Body)
}
