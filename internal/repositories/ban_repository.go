package repositories

import (
	"servihub_backend/internal/models"

	"gorm.io/gorm"
)

// BanRepository пишет и читает аудит банов. Записи только добавляются.
type BanRepository interface {
	Create(ban *models.UserBan) error
	FindByUser(userID string) ([]models.UserBan, error)
}

type BanRepositoryImpl struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) BanRepository {
	return &BanRepositoryImpl{db: db}
}

func (r *BanRepositoryImpl) Create(ban *models.UserBan) error {
	return r.db.Create(ban).Error
}

func (r *BanRepositoryImpl) FindByUser(userID string) ([]models.UserBan, error) {
	bans := make([]models.UserBan, 0)
	err := r.db.Where("user_id = ?", userID).Order("banned_at DESC").Find(&bans).Error
	return bans, err
}
