package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/biblion/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

type AddItemRequest struct {
	BookID uint `json:"book_id" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type DecrementResponse struct {
	BookID   uint `json:"book_id"`
	Deleted  bool `json:"deleted"`
	Quantity uint `json:"quantity"`
}

type ToggleResponse struct {
	BookID uint `json:"book_id"`
	Added  bool `json:"added"`
}

type ContainsResponse struct {
	BookID   uint `json:"book_id"`
	Contains bool `json:"contains"`
}

type PatchBookRequest struct {
	Price         *float64 `json:"price"          validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	Badge         *string  `json:"badge"          validate:"omitempty,max=40"`
}

type RecentSearchRequest struct {
	Query string `json:"query" validate:"required,max=200"`
}

// ImportRequest carries raw browser storage values keyed by storage key.
type ImportRequest struct {
	Values map[string]string `json:"values"`
}
