package repositories

import (
	"servihub_backend/internal/models"

	"gorm.io/gorm"
)

// StatsRepository отдает счетчики для админской сводки платформы.
type StatsRepository interface {
	CountUsers() (int64, error)
	CountProfiles() (int64, error)
	CountDemands() (int64, error)
	CountProposals() (int64, error)
	// ActiveSubscriptionRevenue суммирует цену всех активных подписок.
	ActiveSubscriptionRevenue() (float64, error)
}

type StatsRepositoryImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &StatsRepositoryImpl{db: db}
}

func (r *StatsRepositoryImpl) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) CountProfiles() (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) CountDemands() (int64, error) {
	var count int64
	err := r.db.Model(&models.Demand{}).Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) CountProposals() (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) ActiveSubscriptionRevenue() (float64, error) {
	var sum float64
	err := r.db.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Select("COALESCE(SUM(price), 0)").
		Scan(&sum).Error
	return sum, err
}
