package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Profile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	DisplayName string `gorm:"not null"`
	Trade       string `gorm:"not null"` // "eletricista", "encanador", ...
	City        string
	Description string
	Services    datatypes.JSON `gorm:"type:jsonb"` // ["instalação", "reparo"]
	Verified    bool           `gorm:"default:false"`
	Rating      float64        `gorm:"default:0"`
	IsPublic    bool           `gorm:"default:true"`
}

// GetServices возвращает услуги профиля как slice строк
func (p *Profile) GetServices() []string {
	var services []string
	if len(p.Services) > 0 {
		_ = json.Unmarshal(p.Services, &services)
	}
	return services
}

// SetServices устанавливает услуги профиля
func (p *Profile) SetServices(services []string) {
	data, _ := json.Marshal(services)
	p.Services = datatypes.JSON(data)
}
