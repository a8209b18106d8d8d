package models

import "time"

// ProfileVerification - заявка на проверку профиля исполнителя.
// Жизненный цикл: pending -> approved | rejected. Профиль может иметь
// несколько заявок за время жизни; решение принимается по id заявки.
type ProfileVerification struct {
	BaseModel
	ProfileID   string             `gorm:"not null;index"`
	Status      VerificationStatus `gorm:"type:varchar(20);default:'pending';index"`
	SubmittedAt time.Time          `gorm:"not null;index"`
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNotes string `gorm:"type:text"`

	// Relations
	Profile Profile `gorm:"foreignKey:ProfileID"`
}
