package handler

import (
	"net/http"
	"strings"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CompanyService interface {
	Search(q catalog.Query) *contract.CompanyListResponse
	Meta() *contract.CatalogMetaResponse
	GetCompany(id string) (*contract.CompanyResponse, apierror.ErrorResponse)
	GetNote(companyID string) (*contract.NoteResponse, apierror.ErrorResponse)
	SaveNote(companyID string, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyRoute(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (h *DefaultCompanyRoute) GetCompanies(c echo.Context) error {
	sortKey := strings.TrimSpace(c.QueryParam("sort"))
	if sortKey != "" && !catalog.IsSortKey(sortKey) {
		apierr := apierror.NewInvalidParamTypeError("sort", "one of "+strings.Join(catalog.SortKeys, "|"))
		return c.JSON(apierr.Code(), apierr)
	}

	q := catalog.Query{
		Text:     c.QueryParam("q"),
		Industry: c.QueryParam("industry"),
		Stage:    c.QueryParam("stage"),
		SortKey:  sortKey,
		SortDesc: c.QueryParam("dir") == "desc",
	}

	return c.JSON(http.StatusOK, h.CompanyService.Search(q))
}

func (h *DefaultCompanyRoute) GetMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, h.CompanyService.Meta())
}

func (h *DefaultCompanyRoute) GetCompany(c echo.Context) error {
	company, apierr := h.CompanyService.GetCompany(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *DefaultCompanyRoute) GetNote(c echo.Context) error {
	note, apierr := h.CompanyService.GetNote(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *DefaultCompanyRoute) SaveNote(c echo.Context) error {
	var req contract.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := h.CompanyService.SaveNote(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}
