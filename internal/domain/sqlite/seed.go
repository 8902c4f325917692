package sqlite

import (
	"dealscope/internal/domain/entity"
	"dealscope/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// Seed inserts the starter list and saved searches a fresh install ships
// with. It only runs when the respective tables are empty, so user data is
// never touched.
func Seed(db *gorm.DB) error {
	if err := seedLists(db); err != nil {
		return err
	}
	return seedSearches(db)
}

func seedLists(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.List{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := &entity.List{
		ID:        uuid.NewString(),
		Name:      "Q1 Opportunities",
		CreatedAt: utils.NowUTC(),
	}
	starter.SetIDs([]string{"1", "3", "5"})

	log.Info("Seeding starter list")
	return db.Create(starter).Error
}

func seedSearches(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.SavedSearch{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := utils.NowUTC()
	searches := []*entity.SavedSearch{
		{
			ID:        uuid.NewString(),
			Query:     "Robotics in SF",
			Filters:   `{"industry":"Robotics","location":"San Francisco"}`,
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Query:     "Series A Fintech",
			Filters:   `{"stage":"Series A","industry":"Fintech"}`,
			CreatedAt: now,
		},
	}

	log.Info("Seeding starter saved searches")
	return db.Create(searches).Error
}
