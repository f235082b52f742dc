package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents an authenticated user in the system
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"-"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Role        string    `json:"role"` // "student" or "mentor"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// contains data for updating a user's profile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"max=100"`
	AvatarURL   string `json:"avatar_url" binding:"max=500"`
	Bio         string `json:"bio" binding:"max=1000"`
}

// contains data for updating a user's settings
type UpdateSettingsRequest struct {
	Role string `json:"role" binding:"omitempty,oneof=student mentor"`
}
