package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	BaseModel
	Name     string         `gorm:"not null"`
	Price    float64        `gorm:"not null"`
	Currency string         `gorm:"default:'BRL'"`
	Duration string         `gorm:"not null"`   // "monthly", "yearly"
	Features datatypes.JSON `gorm:"type:jsonb"` // {"highlighted_profile": true, ...}
	IsActive bool           `gorm:"default:true"`
}

type UserSubscription struct {
	BaseModel
	UserID string             `gorm:"not null;index"`
	PlanID string             `gorm:"not null;index"`
	Status SubscriptionStatus `gorm:"type:varchar(20);default:'active';index"`
	// Price фиксируется на момент оформления; смена цены плана не трогает
	// действующие подписки.
	Price       float64 `gorm:"not null"`
	StartDate   time.Time
	EndDate     time.Time
	AutoRenew   bool `gorm:"default:true"`
	CancelledAt *time.Time

	// Relations
	Plan SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
