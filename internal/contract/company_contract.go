package contract

type CompanyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Stage       string `json:"stage"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CompanyListResponse struct {
	Companies []*CompanyResponse `json:"companies"`
	Total     int                `json:"total"`
}

// CatalogMetaResponse feeds the discovery view's filter dropdowns.
type CatalogMetaResponse struct {
	Industries []string `json:"industries"`
	Stages     []string `json:"stages"`
}
