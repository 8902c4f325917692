package entity

import "strings"

// List is a user-defined named subset of company ids.
//
// CompanyIDs is stored space-joined in a single column. Ids are de-duplicated
// on insert only; they may reference companies that no longer exist in the
// catalog (no referential integrity is enforced).
type List struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	CompanyIDs string `gorm:"column:company_ids"`
	CreatedAt  int64  `gorm:"autoUpdateTime:false"`
}

func (l *List) IDs() []string {
	if l.CompanyIDs == "" {
		return []string{}
	}
	return strings.Split(l.CompanyIDs, " ")
}

func (l *List) SetIDs(ids []string) {
	l.CompanyIDs = strings.Join(ids, " ")
}

// Contains reports whether the company id is already a member.
func (l *List) Contains(companyID string) bool {
	for _, id := range l.IDs() {
		if id == companyID {
			return true
		}
	}
	return false
}
