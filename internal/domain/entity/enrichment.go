package entity

// EnrichmentRecord caches the most recent successful enrichment per company.
//
// Payload holds the result exactly as it was returned to the caller, as a
// JSON document. A missing row means the company was never enriched; a
// present row is overwritten on re-enrichment. There is no history and
// no TTL, so a cached result can be arbitrarily stale.
type EnrichmentRecord struct {
	CompanyID string `gorm:"primaryKey;column:company_id"`
	Payload   string
	CachedAt  int64 `gorm:"autoUpdateTime:false"`
}
