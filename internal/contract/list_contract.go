package contract

type ListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=80"`
}

type ListResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CompanyIDs []string `json:"company_ids"`
	CreatedAt  string   `json:"created_at"`
}

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

// ExportFile is a rendered list export ready to be streamed as a download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
