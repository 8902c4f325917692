package handler

import (
	"net/http"

	"dealscope/internal/contract"
	"dealscope/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type SearchService interface {
	GetAllSearches() ([]*contract.SearchResponse, apierror.ErrorResponse)
	CreateSearch(req *contract.SearchRequest) (*contract.SearchResponse, apierror.ErrorResponse)
	DeleteSearch(id string) apierror.ErrorResponse
	RunSearch(id string) (*contract.CompanyListResponse, apierror.ErrorResponse)
}

type DefaultSearchRoute struct {
	SearchService SearchService
}

func NewSearchRoute(searchService SearchService) *DefaultSearchRoute {
	return &DefaultSearchRoute{SearchService: searchService}
}

func (h *DefaultSearchRoute) GetSearches(c echo.Context) error {
	searches, apierr := h.SearchService.GetAllSearches()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"searches": searches}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultSearchRoute) CreateSearch(c echo.Context) error {
	var req contract.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	search, apierr := h.SearchService.CreateSearch(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, search)
}

func (h *DefaultSearchRoute) DeleteSearch(c echo.Context) error {
	if apierr := h.SearchService.DeleteSearch(c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultSearchRoute) RunSearch(c echo.Context) error {
	result, apierr := h.SearchService.RunSearch(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}
