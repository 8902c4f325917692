package handler

import (
	"context"
	"net/http"

	"dealscope/internal/contract"
	"dealscope/internal/infrastructure/groq"
	"dealscope/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EnrichService interface {
	Enrich(ctx context.Context, req *contract.EnrichRequest) (*groq.EnrichmentResult, apierror.ErrorResponse)
	EnrichCompany(ctx context.Context, companyID string) (*groq.EnrichmentResult, apierror.ErrorResponse)
	CachedEnrichment(companyID string) (*contract.EnrichmentResponse, apierror.ErrorResponse)
}

type DefaultEnrichRoute struct {
	EnrichService EnrichService
}

func NewEnrichRoute(enrichService EnrichService) *DefaultEnrichRoute {
	return &DefaultEnrichRoute{EnrichService: enrichService}
}

// Enrich is the stateless relay: it validates the body, calls the provider
// once and returns whatever came back. Nothing is cached here.
func (h *DefaultEnrichRoute) Enrich(c echo.Context) error {
	var req contract.EnrichRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	result, apierr := h.EnrichService.Enrich(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DefaultEnrichRoute) EnrichCompany(c echo.Context) error {
	result, apierr := h.EnrichService.EnrichCompany(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DefaultEnrichRoute) GetCachedEnrichment(c echo.Context) error {
	cached, apierr := h.EnrichService.CachedEnrichment(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, cached)
}
