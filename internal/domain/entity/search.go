package entity

// SavedSearch is a persisted query/filter combination. Filters is the
// JSON-serialized filter-name -> value map; searches are never invalidated
// when the catalog changes.
type SavedSearch struct {
	ID        string `gorm:"primaryKey"`
	Query     string
	Filters   string
	CreatedAt int64 `gorm:"autoUpdateTime:false"`
}
