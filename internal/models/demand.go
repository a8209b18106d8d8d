package models

import "time"

// Demand - заявка клиента на услугу.
type Demand struct {
	BaseModel
	ClientID    string       `gorm:"not null;index"`
	Title       string       `gorm:"not null"`
	Category    string       `gorm:"not null;index"`
	City        string       `gorm:"index"`
	Description string       `gorm:"type:text"`
	Budget      float64      `gorm:"default:0"`
	Status      DemandStatus `gorm:"type:varchar(20);default:'open';index"`
	Deadline    *time.Time

	// Relations
	Proposals []Proposal `gorm:"foreignKey:DemandID"`
}

// Proposal - отклик исполнителя на заявку.
type Proposal struct {
	BaseModel
	DemandID   string         `gorm:"not null;index"`
	ProviderID string         `gorm:"not null;index"`
	Price      float64        `gorm:"not null"`
	Message    string         `gorm:"type:text"`
	Status     ProposalStatus `gorm:"type:varchar(20);default:'pending';index"`
}
