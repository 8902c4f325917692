package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/entity"
	"dealscope/internal/utils"
	"dealscope/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ListRepository interface {
	FindAll() ([]*entity.List, error)
	FindByID(id string) (*entity.List, error)
	Save(list *entity.List) error
	Delete(list *entity.List) error
}

var exportHeader = []string{"id", "name", "website", "industry", "stage", "location"}

type ListService struct {
	ListRepo ListRepository
	Catalog  *catalog.Catalog
	Validate *validator.Validate
}

func NewListService(listRepo ListRepository, cat *catalog.Catalog, validate *validator.Validate) *ListService {
	return &ListService{
		ListRepo: listRepo,
		Catalog:  cat,
		Validate: validate,
	}
}

func (s *ListService) GetAllLists() ([]*contract.ListResponse, apierror.ErrorResponse) {
	lists, err := s.ListRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch lists: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ListResponse, len(lists))
	for i, list := range lists {
		resp[i] = toListResponse(list)
	}
	return resp, nil
}

func (s *ListService) GetList(id string) (*contract.ListResponse, apierror.ErrorResponse) {
	list, apierr := s.findList(id)
	if apierr != nil {
		return nil, apierr
	}
	return toListResponse(list), nil
}

func (s *ListService) CreateList(req *contract.ListRequest) (*contract.ListResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	list := &entity.List{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: utils.NowUTC(),
	}

	if err := s.ListRepo.Save(list); err != nil {
		log.Errorf("failed to create list: %v", err)
		return nil, apierror.InternalServerError
	}
	return toListResponse(list), nil
}

func (s *ListService) RenameList(id string, req *contract.UpdateListRequest) (*contract.ListResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	list, apierr := s.findList(id)
	if apierr != nil {
		return nil, apierr
	}

	if req.Name != nil {
		list.Name = *req.Name
	}

	if err := s.ListRepo.Save(list); err != nil {
		log.Errorf("failed to update list %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toListResponse(list), nil
}

func (s *ListService) DeleteList(id string) apierror.ErrorResponse {
	list, apierr := s.findList(id)
	if apierr != nil {
		return apierr
	}

	if err := s.ListRepo.Delete(list); err != nil {
		log.Errorf("failed to delete list %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// AddCompany appends the company id to the list, preserving insertion order.
// Adding an id that is already a member is a no-op, so the call is
// idempotent. The id is not checked against the catalog; lists may hold
// dangling references.
func (s *ListService) AddCompany(listID, companyID string) (*contract.ListResponse, apierror.ErrorResponse) {
	list, apierr := s.findList(listID)
	if apierr != nil {
		return nil, apierr
	}

	if !list.Contains(companyID) {
		list.SetIDs(append(list.IDs(), companyID))
		if err := s.ListRepo.Save(list); err != nil {
			log.Errorf("failed to add company %s to list %s: %v", companyID, listID, err)
			return nil, apierror.InternalServerError
		}
	}
	return toListResponse(list), nil
}

func (s *ListService) RemoveCompany(listID, companyID string) (*contract.ListResponse, apierror.ErrorResponse) {
	list, apierr := s.findList(listID)
	if apierr != nil {
		return nil, apierr
	}

	ids := list.IDs()
	kept := ids[:0]
	for _, id := range ids {
		if id != companyID {
			kept = append(kept, id)
		}
	}

	if len(kept) != len(ids) {
		list.SetIDs(kept)
		if err := s.ListRepo.Save(list); err != nil {
			log.Errorf("failed to remove company %s from list %s: %v", companyID, listID, err)
			return nil, apierror.InternalServerError
		}
	}
	return toListResponse(list), nil
}

// Export renders the list's resolvable members in list order. Ids missing
// from the catalog are skipped.
func (s *ListService) Export(listID, format string) (*contract.ExportFile, apierror.ErrorResponse) {
	list, apierr := s.findList(listID)
	if apierr != nil {
		return nil, apierr
	}

	var companies []catalog.Company
	for _, id := range list.IDs() {
		if company, ok := s.Catalog.FindByID(id); ok {
			companies = append(companies, company)
		}
	}

	switch format {
	case contract.ExportFormatCSV:
		data, err := renderCSV(companies)
		if err != nil {
			log.Errorf("failed to render csv for list %s: %v", listID, err)
			return nil, apierror.InternalServerError
		}
		return &contract.ExportFile{
			Name:        exportFileName(list.Name, format),
			ContentType: "text/csv",
			Data:        data,
		}, nil

	case contract.ExportFormatJSON:
		data, err := json.MarshalIndent(companies, "", "  ")
		if err != nil {
			log.Errorf("failed to render json for list %s: %v", listID, err)
			return nil, apierror.InternalServerError
		}
		return &contract.ExportFile{
			Name:        exportFileName(list.Name, format),
			ContentType: "application/json",
			Data:        data,
		}, nil

	default:
		return nil, apierror.InvalidExportFormatError
	}
}

func (s *ListService) findList(id string) (*entity.List, apierror.ErrorResponse) {
	list, err := s.ListRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch list %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if list == nil {
		return nil, apierror.ListNotFoundError
	}
	return list, nil
}

func renderCSV(companies []catalog.Company) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, c := range companies {
		record := []string{c.ID, c.Name, c.Website, c.Industry, c.Stage, c.Location}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFileName(listName, format string) string {
	return strings.ReplaceAll(listName, " ", "_") + "." + format
}

func toListResponse(list *entity.List) *contract.ListResponse {
	return &contract.ListResponse{
		ID:         list.ID,
		Name:       list.Name,
		CompanyIDs: list.IDs(),
		CreatedAt:  utils.FormatEpoch(list.CreatedAt),
	}
}
