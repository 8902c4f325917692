package repository

import (
	"errors"

	"dealscope/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultSearchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *DefaultSearchRepository {
	return &DefaultSearchRepository{db: db}
}

func (d *DefaultSearchRepository) FindAll() ([]*entity.SavedSearch, error) {
	var searches []*entity.SavedSearch
	err := d.db.Order("created_at").Find(&searches).Error
	if err != nil {
		return nil, err
	}
	return searches, nil
}

func (d *DefaultSearchRepository) FindByID(id string) (*entity.SavedSearch, error) {
	var search entity.SavedSearch
	err := d.db.First(&search, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &search, nil
}

func (d *DefaultSearchRepository) Save(search *entity.SavedSearch) error {
	return d.db.Save(search).Error
}

func (d *DefaultSearchRepository) Delete(search *entity.SavedSearch) error {
	return d.db.Delete(search).Error
}
