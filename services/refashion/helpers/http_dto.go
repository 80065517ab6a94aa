package helpers

import (
	"refashion/internal/listings"
	model "refashion/internal/models"
)

// Request/Response DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AddItemRequest struct {
	FileName      string  `json:"file_name" binding:"required"`
	Preview       string  `json:"preview"`
	DetectedClass string  `json:"detected_class"`
	Confidence    float64 `json:"confidence" binding:"gte=0,lte=1"`
}

type AddItemResponse struct {
	Item    model.BagItem `json:"item"`
	Counts  model.Counts  `json:"counts"`
	Balance int           `json:"balance"`
}

type MoveItemRequest struct {
	From   model.Category `json:"from" binding:"required"`
	To     model.Category `json:"to" binding:"required"`
	ItemID string         `json:"item_id" binding:"required"`
}

type MoveItemResponse struct {
	Moved  bool           `json:"moved"`
	Item   *model.BagItem `json:"item,omitempty"`
	Counts model.Counts   `json:"counts"`
}

type AddPointsRequest struct {
	Action      model.RewardAction `json:"action" binding:"required"`
	Description string             `json:"description"`
}

type AddPointsResponse struct {
	Awarded int `json:"awarded"`
	Balance int `json:"balance"`
}

type CreateListingRequest struct {
	listings.CreateRequest
	BagItemID string `json:"bag_item_id"`
}

type CreateListingResponse struct {
	Listing      model.Listing `json:"listing"`
	PointsEarned int           `json:"points_earned"`
}
