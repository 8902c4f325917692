package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/entity"
	"dealscope/internal/infrastructure/groq"
	"dealscope/internal/utils"
	"dealscope/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type EnrichmentRepository interface {
	FindByCompanyID(companyID string) (*entity.EnrichmentRecord, error)
	Save(record *entity.EnrichmentRecord) error
}

// EnrichService owns the enrichment round-trip: the stateless relay, the
// company-scoped cached variant, and the per-company in-flight guard that
// keeps a company from being enriched twice concurrently.
type EnrichService struct {
	Client         *groq.Client
	Catalog        *catalog.Catalog
	EnrichmentRepo EnrichmentRepository
	Validate       *validator.Validate

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewEnrichService(
	client *groq.Client,
	cat *catalog.Catalog,
	enrichmentRepo EnrichmentRepository,
	validate *validator.Validate,
) *EnrichService {
	return &EnrichService{
		Client:         client,
		Catalog:        cat,
		EnrichmentRepo: enrichmentRepo,
		Validate:       validate,
		inFlight:       make(map[string]bool),
	}
}

// Enrich is the stateless relay: validate, call the provider, return the
// result verbatim. Nothing is persisted; two calls with the same input may
// well produce different results.
func (s *EnrichService) Enrich(ctx context.Context, req *contract.EnrichRequest) (*groq.EnrichmentResult, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.MissingEnrichFieldsError
	}

	result, err := s.Client.Enrich(ctx, req.Name, req.Website)
	if err != nil {
		return nil, s.mapEnrichError(req.Name, err)
	}
	return result, nil
}

// EnrichCompany enriches a catalog company and caches the result by its id,
// overwriting any previous result. At most one enrichment per company may be
// outstanding; a concurrent second call is rejected rather than queued.
func (s *EnrichService) EnrichCompany(ctx context.Context, companyID string) (*groq.EnrichmentResult, apierror.ErrorResponse) {
	company, ok := s.Catalog.FindByID(companyID)
	if !ok {
		return nil, apierror.CompanyNotFoundError
	}

	if !s.acquire(companyID) {
		return nil, apierror.EnrichmentInFlightError
	}
	defer s.release(companyID)

	result, err := s.Client.Enrich(ctx, company.Name, company.Website)
	if err != nil {
		return nil, s.mapEnrichError(company.Name, err)
	}

	s.cacheResult(companyID, result)
	return result, nil
}

// CachedEnrichment returns the most recent cached result for the company.
// Absence means the company was never enriched.
func (s *EnrichService) CachedEnrichment(companyID string) (*contract.EnrichmentResponse, apierror.ErrorResponse) {
	if _, ok := s.Catalog.FindByID(companyID); !ok {
		return nil, apierror.CompanyNotFoundError
	}

	record, err := s.EnrichmentRepo.FindByCompanyID(companyID)
	if err != nil {
		log.Errorf("failed to fetch enrichment cache for company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}

	if record == nil {
		return nil, apierror.EnrichmentNotCachedError
	}

	var result groq.EnrichmentResult
	if err := json.Unmarshal([]byte(record.Payload), &result); err != nil {
		log.Errorf("corrupt enrichment cache for company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.EnrichmentResponse{
		CompanyID: companyID,
		Result:    &result,
		CachedAt:  utils.FormatEpoch(record.CachedAt),
	}, nil
}

func (s *EnrichService) acquire(companyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[companyID] {
		return false
	}
	s.inFlight[companyID] = true
	return true
}

func (s *EnrichService) release(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, companyID)
}

// cacheResult persists best-effort: the caller already holds the result, so
// a failed cache write is logged and the call still succeeds.
func (s *EnrichService) cacheResult(companyID string, result *groq.EnrichmentResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to serialize enrichment for company %s: %v", companyID, err)
		return
	}

	record := &entity.EnrichmentRecord{
		CompanyID: companyID,
		Payload:   string(payload),
		CachedAt:  utils.NowUTC(),
	}
	if err := s.EnrichmentRepo.Save(record); err != nil {
		log.Errorf("failed to save enrichment cache for company %s: %v", companyID, err)
	}
}

func (s *EnrichService) mapEnrichError(name string, err error) apierror.ErrorResponse {
	var upstream *groq.UpstreamError

	switch {
	case errors.Is(err, groq.ErrMissingAPIKey):
		log.Errorf("enrichment requested for %s but no api key is configured", name)
		return apierror.EnrichmentNotConfiguredError

	case errors.As(err, &upstream):
		log.Errorf("enrichment upstream failure for %s (status %d): %s", name, upstream.Status, upstream.Body)
		return apierror.NewUpstreamError(upstream.Status)

	case errors.Is(err, groq.ErrMalformedResponse):
		log.Errorf("enrichment returned malformed payload for %s: %v", name, err)
		return apierror.EnrichmentBadPayloadError

	default:
		log.Errorf("enrichment failed for %s: %v", name, err)
		return apierror.EnrichmentFailedError
	}
}
