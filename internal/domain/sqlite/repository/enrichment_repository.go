package repository

import (
	"errors"

	"dealscope/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultEnrichmentRepository struct {
	db *gorm.DB
}

func NewEnrichmentRepository(db *gorm.DB) *DefaultEnrichmentRepository {
	return &DefaultEnrichmentRepository{db: db}
}

func (d *DefaultEnrichmentRepository) FindByCompanyID(companyID string) (*entity.EnrichmentRecord, error) {
	var record entity.EnrichmentRecord
	err := d.db.Where("company_id = ?", companyID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (d *DefaultEnrichmentRepository) Save(record *entity.EnrichmentRecord) error {
	return d.db.Save(record).Error
}
