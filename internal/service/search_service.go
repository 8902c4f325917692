package service

import (
	"encoding/json"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/entity"
	"dealscope/internal/utils"
	"dealscope/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type SearchRepository interface {
	FindAll() ([]*entity.SavedSearch, error)
	FindByID(id string) (*entity.SavedSearch, error)
	Save(search *entity.SavedSearch) error
	Delete(search *entity.SavedSearch) error
}

type SearchService struct {
	SearchRepo SearchRepository
	Catalog    *catalog.Catalog
	Validate   *validator.Validate
}

func NewSearchService(searchRepo SearchRepository, cat *catalog.Catalog, validate *validator.Validate) *SearchService {
	return &SearchService{
		SearchRepo: searchRepo,
		Catalog:    cat,
		Validate:   validate,
	}
}

func (s *SearchService) GetAllSearches() ([]*contract.SearchResponse, apierror.ErrorResponse) {
	searches, err := s.SearchRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch saved searches: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.SearchResponse, len(searches))
	for i, search := range searches {
		resp[i] = toSearchResponse(search)
	}
	return resp, nil
}

func (s *SearchService) CreateSearch(req *contract.SearchRequest) (*contract.SearchResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	filters := req.Filters
	if filters == nil {
		filters = map[string]string{}
	}
	encoded, err := json.Marshal(filters)
	if err != nil {
		log.Errorf("failed to serialize search filters: %v", err)
		return nil, apierror.InternalServerError
	}

	search := &entity.SavedSearch{
		ID:        uuid.NewString(),
		Query:     req.Query,
		Filters:   string(encoded),
		CreatedAt: utils.NowUTC(),
	}

	if err := s.SearchRepo.Save(search); err != nil {
		log.Errorf("failed to save search: %v", err)
		return nil, apierror.InternalServerError
	}
	return toSearchResponse(search), nil
}

func (s *SearchService) DeleteSearch(id string) apierror.ErrorResponse {
	search, apierr := s.findSearch(id)
	if apierr != nil {
		return apierr
	}

	if err := s.SearchRepo.Delete(search); err != nil {
		log.Errorf("failed to delete search %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// RunSearch re-executes a saved search against the catalog. Saved filters
// win over the free-text query: when any filters are present the query
// string is treated as the search's display name, not a predicate. Filter
// names other than industry, stage and location are ignored; a saved search
// is never invalidated against the current catalog, so it may match nothing.
func (s *SearchService) RunSearch(id string) (*contract.CompanyListResponse, apierror.ErrorResponse) {
	search, apierr := s.findSearch(id)
	if apierr != nil {
		return nil, apierr
	}

	filters := map[string]string{}
	if err := json.Unmarshal([]byte(search.Filters), &filters); err != nil {
		log.Errorf("corrupt filters on saved search %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	q := catalog.Query{
		Industry: filters["industry"],
		Stage:    filters["stage"],
		Location: filters["location"],
	}
	if len(filters) == 0 {
		q.Text = search.Query
	}

	matches := s.Catalog.Search(q)
	companies := make([]*contract.CompanyResponse, len(matches))
	for i, c := range matches {
		companies[i] = toCompanyResponse(c)
	}

	return &contract.CompanyListResponse{
		Companies: companies,
		Total:     len(companies),
	}, nil
}

func (s *SearchService) findSearch(id string) (*entity.SavedSearch, apierror.ErrorResponse) {
	search, err := s.SearchRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch search %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if search == nil {
		return nil, apierror.SearchNotFoundError
	}
	return search, nil
}

func toSearchResponse(search *entity.SavedSearch) *contract.SearchResponse {
	filters := map[string]string{}
	if err := json.Unmarshal([]byte(search.Filters), &filters); err != nil {
		log.Warnf("unreadable filters on saved search %s: %v", search.ID, err)
	}

	return &contract.SearchResponse{
		ID:        search.ID,
		Query:     search.Query,
		Filters:   filters,
		CreatedAt: utils.FormatEpoch(search.CreatedAt),
	}
}
