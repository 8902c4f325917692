package handler

import (
	"net/http"

	"dealscope/internal/contract"
	"dealscope/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ListService interface {
	GetAllLists() ([]*contract.ListResponse, apierror.ErrorResponse)
	GetList(id string) (*contract.ListResponse, apierror.ErrorResponse)
	CreateList(req *contract.ListRequest) (*contract.ListResponse, apierror.ErrorResponse)
	RenameList(id string, req *contract.UpdateListRequest) (*contract.ListResponse, apierror.ErrorResponse)
	DeleteList(id string) apierror.ErrorResponse
	AddCompany(listID, companyID string) (*contract.ListResponse, apierror.ErrorResponse)
	RemoveCompany(listID, companyID string) (*contract.ListResponse, apierror.ErrorResponse)
	Export(listID, format string) (*contract.ExportFile, apierror.ErrorResponse)
}

type DefaultListRoute struct {
	ListService ListService
}

func NewListRoute(listService ListService) *DefaultListRoute {
	return &DefaultListRoute{ListService: listService}
}

func (h *DefaultListRoute) GetLists(c echo.Context) error {
	lists, apierr := h.ListService.GetAllLists()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"lists": lists}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultListRoute) GetList(c echo.Context) error {
	list, apierr := h.ListService.GetList(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DefaultListRoute) CreateList(c echo.Context) error {
	var req contract.ListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	list, apierr := h.ListService.CreateList(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *DefaultListRoute) UpdateList(c echo.Context) error {
	var req contract.UpdateListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	list, apierr := h.ListService.RenameList(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DefaultListRoute) DeleteList(c echo.Context) error {
	if apierr := h.ListService.DeleteList(c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultListRoute) AddCompany(c echo.Context) error {
	list, apierr := h.ListService.AddCompany(c.Param("id"), c.Param("companyId"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DefaultListRoute) RemoveCompany(c echo.Context) error {
	list, apierr := h.ListService.RemoveCompany(c.Param("id"), c.Param("companyId"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DefaultListRoute) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = contract.ExportFormatCSV
	}

	file, apierr := h.ListService.Export(c.Param("id"), format)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
