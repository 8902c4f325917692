package entity

// Note is the single free-text note a user keeps per company.
// Writes are whole-value: the latest save replaces whatever was there.
type Note struct {
	CompanyID string `gorm:"primaryKey;column:company_id"`
	Body      string
	UpdatedAt int64 `gorm:"autoUpdateTime:false"`
}
