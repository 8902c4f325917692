package service

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"dealscope/internal/catalog"
	"dealscope/internal/contract"
	"dealscope/internal/domain/sqlite/repository"
	"dealscope/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListService(t *testing.T) *ListService {
	t.Helper()
	return NewListService(repository.NewListRepository(testDB(t)), testCatalog(t), testValidate())
}

func TestCreateListValidation(t *testing.T) {
	svc := newListService(t)

	_, apierr := svc.CreateList(&contract.ListRequest{Name: ""})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())

	_, apierr = svc.CreateList(&contract.ListRequest{Name: strings.Repeat("x", 81)})
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestAddCompanyIsIdempotent(t *testing.T) {
	svc := newListService(t)

	list, apierr := svc.CreateList(&contract.ListRequest{Name: "Fintech"})
	require.Nil(t, apierr)
	assert.Empty(t, list.CompanyIDs)

	list, apierr = svc.AddCompany(list.ID, "3")
	require.Nil(t, apierr)
	list, apierr = svc.AddCompany(list.ID, "3")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"3"}, list.CompanyIDs)

	// Re-read from the store: dedup happened at insert time, not render time.
	list, apierr = svc.GetList(list.ID)
	require.Nil(t, apierr)
	assert.Equal(t, []string{"3"}, list.CompanyIDs)
}

func TestAddCompanyPreservesInsertionOrderAndAllowsDanglingIDs(t *testing.T) {
	svc := newListService(t)

	list, apierr := svc.CreateList(&contract.ListRequest{Name: "Mixed"})
	require.Nil(t, apierr)

	for _, id := range []string{"5", "1", "ghost-99"} {
		list, apierr = svc.AddCompany(list.ID, id)
		require.Nil(t, apierr)
	}
	assert.Equal(t, []string{"5", "1", "ghost-99"}, list.CompanyIDs)
}

func TestRemoveCompany(t *testing.T) {
	svc := newListService(t)

	list, _ := svc.CreateList(&contract.ListRequest{Name: "Trim"})
	list, _ = svc.AddCompany(list.ID, "1")
	list, _ = svc.AddCompany(list.ID, "2")

	list, apierr := svc.RemoveCompany(list.ID, "1")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"2"}, list.CompanyIDs)

	// Removing an absent id is a no-op.
	list, apierr = svc.RemoveCompany(list.ID, "1")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"2"}, list.CompanyIDs)
}

func TestExportCSV(t *testing.T) {
	svc := newListService(t)

	list, _ := svc.CreateList(&contract.ListRequest{Name: "Q1 Picks"})
	list, _ = svc.AddCompany(list.ID, "3")
	list, _ = svc.AddCompany(list.ID, "1")

	file, apierr := svc.Export(list.ID, contract.ExportFormatCSV)
	require.Nil(t, apierr)
	assert.Equal(t, "Q1_Picks.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimRight(string(file.Data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,website,industry,stage,location", lines[0])

	// Rows follow list order, not catalog order.
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,"))
}

func TestExportCSVSkipsDanglingIDs(t *testing.T) {
	svc := newListService(t)

	list, _ := svc.CreateList(&contract.ListRequest{Name: "Ghosts"})
	list, _ = svc.AddCompany(list.ID, "ghost-1")
	list, _ = svc.AddCompany(list.ID, "2")

	file, apierr := svc.Export(list.ID, contract.ExportFormatCSV)
	require.Nil(t, apierr)

	lines := strings.Split(strings.TrimRight(string(file.Data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2,"))
}

func TestExportJSON(t *testing.T) {
	svc := newListService(t)

	list, _ := svc.CreateList(&contract.ListRequest{Name: "Two"})
	list, _ = svc.AddCompany(list.ID, "1")
	list, _ = svc.AddCompany(list.ID, "2")

	file, apierr := svc.Export(list.ID, contract.ExportFormatJSON)
	require.Nil(t, apierr)
	assert.Equal(t, "application/json", file.ContentType)

	var companies []catalog.Company
	require.NoError(t, json.Unmarshal(file.Data, &companies))
	require.Len(t, companies, 2)
	assert.Equal(t, "1", companies[0].ID)
	assert.Equal(t, "2", companies[1].ID)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newListService(t)
	list, _ := svc.CreateList(&contract.ListRequest{Name: "Fmt"})

	_, apierr := svc.Export(list.ID, "xlsx")
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.InvalidExportFormatError, apierr)
}

func TestListLifecycle(t *testing.T) {
	svc := newListService(t)

	created, apierr := svc.CreateList(&contract.ListRequest{Name: "  Renameable  "})
	require.Nil(t, apierr)
	assert.Equal(t, "Renameable", created.Name, "names are trimmed before validation")

	newName := "Renamed"
	renamed, apierr := svc.RenameList(created.ID, &contract.UpdateListRequest{Name: &newName})
	require.Nil(t, apierr)
	assert.Equal(t, "Renamed", renamed.Name)

	all, apierr := svc.GetAllLists()
	require.Nil(t, apierr)
	require.Len(t, all, 1)

	require.Nil(t, svc.DeleteList(created.ID))
	_, apierr = svc.GetList(created.ID)
	assert.Equal(t, apierror.ListNotFoundError, apierr)
}
