package contract

// EnrichRequest feeds the stateless relay endpoint. Website is only checked
// for presence; it is a URL-shaped string, not a validated URL.
type EnrichRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Website string `json:"website" validate:"required,min=1,max=500"`
}

// EnrichmentResponse wraps a cached result with when it was produced.
type EnrichmentResponse struct {
	CompanyID string `json:"company_id"`
	Result    any    `json:"result"`
	CachedAt  string `json:"cached_at"`
}
