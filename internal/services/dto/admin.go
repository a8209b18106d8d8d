package dto

import "time"

// PlatformStats - сводка платформы для админской панели.
type PlatformStats struct {
	Users          int64   `json:"users"`
	Profiles       int64   `json:"profiles"`
	Demands        int64   `json:"demands"`
	Proposals      int64   `json:"proposals"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}

type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileView struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Trade       string   `json:"trade"`
	City        string   `json:"city"`
	Services    []string `json:"services"`
	Verified    bool     `json:"verified"`
}

type VerificationView struct {
	ID          string      `json:"id"`
	ProfileID   string      `json:"profile_id"`
	Status      string      `json:"status"`
	SubmittedAt time.Time   `json:"submitted_at"`
	ReviewedBy  *string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time  `json:"reviewed_at,omitempty"`
	Profile     ProfileView `json:"profile"`
}

type BanRequest struct {
	Reason string `json:"reason"`
}

type RejectVerificationRequest struct {
	Reason string `json:"reason"`
}
