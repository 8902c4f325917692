package repository

import (
	"errors"

	"dealscope/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *DefaultListRepository {
	return &DefaultListRepository{db: db}
}

func (d *DefaultListRepository) FindAll() ([]*entity.List, error) {
	var lists []*entity.List
	err := d.db.Order("created_at").Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (d *DefaultListRepository) FindByID(id string) (*entity.List, error) {
	var list entity.List
	err := d.db.First(&list, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (d *DefaultListRepository) Save(list *entity.List) error {
	return d.db.Save(list).Error
}

func (d *DefaultListRepository) Delete(list *entity.List) error {
	return d.db.Delete(list).Error
}
