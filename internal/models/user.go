package models

type Role int

// UserRole constants
const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// User represents a user in the system
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Role         Role   `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Login    string `json:"login"` // email or username
	Password string `json:"password"`
}

// ProfileResponse represents the profile data returned to the user
type ProfileResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	TotalXP  int    `json:"totalXp"`
	WeeklyXP int    `json:"weeklyXp"`
	Streak   int    `json:"streak"`
	// EpisodesCompleted counts episodes finished across all courses
	EpisodesCompleted int `json:"episodesCompleted"`
}
