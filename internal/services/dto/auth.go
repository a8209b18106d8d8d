package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        AdminUser `json:"user"`
}
