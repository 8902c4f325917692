package contract

type SearchRequest struct {
	Query   string            `json:"query" validate:"required,min=1,max=120"`
	Filters map[string]string `json:"filters"`
}

type SearchResponse struct {
	ID        string            `json:"id"`
	Query     string            `json:"query"`
	Filters   map[string]string `json:"filters"`
	CreatedAt string            `json:"created_at"`
}
