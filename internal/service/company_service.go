package service

import (
	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/entity"
	"dealscope/internal/utils"
	"dealscope/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindByCompanyID(companyID string) (*entity.Note, error)
	Save(note *entity.Note) error
}

// CompanyService serves the discovery view over the static catalog and the
// per-company notes editor.
type CompanyService struct {
	Catalog  *catalog.Catalog
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewCompanyService(cat *catalog.Catalog, noteRepo NoteRepository, validate *validator.Validate) *CompanyService {
	return &CompanyService{
		Catalog:  cat,
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

func (s *CompanyService) Search(q catalog.Query) *contract.CompanyListResponse {
	matches := s.Catalog.Search(q)

	companies := make([]*contract.CompanyResponse, len(matches))
	for i, c := range matches {
		companies[i] = toCompanyResponse(c)
	}

	return &contract.CompanyListResponse{
		Companies: companies,
		Total:     len(companies),
	}
}

func (s *CompanyService) Meta() *contract.CatalogMetaResponse {
	return &contract.CatalogMetaResponse{
		Industries: s.Catalog.Industries(),
		Stages:     s.Catalog.Stages(),
	}
}

func (s *CompanyService) GetCompany(id string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, ok := s.Catalog.FindByID(id)
	if !ok {
		return nil, apierror.CompanyNotFoundError
	}
	return toCompanyResponse(company), nil
}

func (s *CompanyService) GetNote(companyID string) (*contract.NoteResponse, apierror.ErrorResponse) {
	if _, ok := s.Catalog.FindByID(companyID); !ok {
		return nil, apierror.CompanyNotFoundError
	}

	note, err := s.NoteRepo.FindByCompanyID(companyID)
	if err != nil {
		log.Errorf("failed to fetch note for company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}

	// Absence just means nothing was written yet; the editor starts empty.
	if note == nil {
		return &contract.NoteResponse{CompanyID: companyID, Body: ""}, nil
	}
	return toNoteResponse(note), nil
}

// SaveNote replaces the whole note for the company. Last write wins.
func (s *CompanyService) SaveNote(companyID string, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if _, ok := s.Catalog.FindByID(companyID); !ok {
		return nil, apierror.CompanyNotFoundError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note := &entity.Note{
		CompanyID: companyID,
		Body:      req.Body,
		UpdatedAt: utils.NowUTC(),
	}

	if err := s.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note for company %s: %v", companyID, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func toCompanyResponse(c catalog.Company) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Website:     c.Website,
		Industry:    c.Industry,
		Stage:       c.Stage,
		Location:    c.Location,
		Description: c.Description,
	}
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		CompanyID: note.CompanyID,
		Body:      note.Body,
		UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
	}
}
