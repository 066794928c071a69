package types

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vlat-exam/api/internal/models"
)

// APIResponse is the envelope shared by every application endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type RegisterResponse struct {
	APIResponse
	LoginID string `json:"loginId"`
	UserID  uint   `json:"userId"`
}

type LoginResponse struct {
	APIResponse
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type UsersResponse struct {
	APIResponse
	Count int        `json:"count"`
	Users []UserView `json:"users"`
}

type ProfileResponse struct {
	APIResponse
	User UserView `json:"user"`
}

type NotFoundResponse struct {
	APIResponse
	Path string `json:"path"`
}

// UserView is a user without the password column.
type UserView struct {
	ID        uint      `json:"id"`
	LoginID   string    `json:"login_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		LoginID:   u.LoginID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

type ServiceInfo struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	Database    string `json:"database"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type HealthStatus struct {
	Status      string   `json:"status"`
	Database    string   `json:"database"`
	Error       string   `json:"error,omitempty"`
	Timestamp   string   `json:"timestamp"`
	Uptime      *float64 `json:"uptime,omitempty"`
	Environment string   `json:"environment,omitempty"`
}

type DBInfo struct {
	Host      string `json:"host"`
	Database  string `json:"database"`
	Port      string `json:"port"`
	User      string `json:"user"`
	NodeEnv   string `json:"nodeEnv"`
	Timestamp string `json:"timestamp"`
}

// Timestamp formats t the way JavaScript's Date.toISOString does.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
