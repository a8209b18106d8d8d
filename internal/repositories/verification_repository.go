package repositories

import (
	"errors"
	"time"

	"servihub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification not found")

type VerificationRepository interface {
	FindByID(id string) (*models.ProfileVerification, error)
	// FindPending возвращает заявки в статусе pending, старые первыми (FIFO
	// для ревью), каждая с подгруженным профилем.
	FindPending() ([]models.ProfileVerification, error)
	// MarkReviewed проставляет решение по id заявки. Условие только по id:
	// повторное решение по уже рассмотренной заявке перезаписывает его.
	MarkReviewed(id string, status models.VerificationStatus, reviewerID, notes string) error
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.ProfileVerification, error) {
	var verification models.ProfileVerification
	err := r.db.Preload("Profile").First(&verification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &verification, nil
}

func (r *VerificationRepositoryImpl) FindPending() ([]models.ProfileVerification, error) {
	verifications := make([]models.ProfileVerification, 0)
	err := r.db.Preload("Profile").
		Where("status = ?", models.VerificationStatusPending).
		Order("submitted_at ASC").
		Find(&verifications).Error
	return verifications, err
}

func (r *VerificationRepositoryImpl) MarkReviewed(id string, status models.VerificationStatus, reviewerID, notes string) error {
	now := time.Now()
	result := r.db.Model(&models.ProfileVerification{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"reviewed_by":  reviewerID,
		"reviewed_at":  now,
		"review_notes": notes,
		"updated_at":   now,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}
