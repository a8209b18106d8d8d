package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	Name         string     `gorm:"not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'"`
	BannedUntil  *time.Time

	// Relations
	Profile      *Profile          `gorm:"foreignKey:UserID"`
	Subscription *UserSubscription `gorm:"foreignKey:UserID"`
}

// UserBan - append-only запись аудита. Никогда не обновляется и не удаляется:
// повторный бан того же пользователя добавляет новую строку.
type UserBan struct {
	BaseModel
	UserID   string    `gorm:"not null;index"`
	Reason   string    `gorm:"type:text"`
	BannedBy string    `gorm:"not null;index"`
	BannedAt time.Time `gorm:"not null"`
}
