package growloop

import (
	"encoding/json"
	"fmt"
	"strconv"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
)

// envelope is the {success, message, data} wrapper around every response
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// parseEnvelope rejects bodies that are not an object carrying a boolean "success"
func parseEnvelope(raw []byte) (envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return envelope{}, refashionerrors.ErrUnrecognizedResponse
	}
	success, ok := fields["success"]
	if !ok {
		return envelope{}, refashionerrors.ErrUnrecognizedResponse
	}

	var env envelope
	if err := json.Unmarshal(success, &env.Success); err != nil {
		return envelope{}, fmt.Errorf("%w - success is not a boolean", refashionerrors.ErrUnrecognizedResponse)
	}
	if msg, ok := fields["message"]; ok {
		_ = json.Unmarshal(msg, &env.Message)
	}
	env.Data = fields["data"]
	return env, nil
}

// RemoteUser is the backend's user representation
type RemoteUser struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	UserName     string `json:"userName"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	AddressText  string `json:"addressText,omitempty"`
	LoyaltyPoint int    `json:"loyaltyPoint"`
	IsVerified   bool   `json:"isVerified"`
	IsPremium    bool   `json:"isPremium"`
}

// ToUser converts the backend user into the local identity
func (u RemoteUser) ToUser() model.User {
	points := u.LoyaltyPoint
	user := model.User{Email: u.Email, Name: u.UserName, Points: &points}
	if u.UserID != 0 {
		user.ID = strconv.FormatInt(u.UserID, 10)
	}
	return user
}

// ProfileUpdate is the body of PUT /users/profile
type ProfileUpdate struct {
	UserName    string `json:"userName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AddressText string `json:"addressText,omitempty"`
}

// Purpose is the backend's name for a bag's disposition
type Purpose string

const (
	PurposeResale   Purpose = "RESALE"
	PurposeDonation Purpose = "DONATION"
)

// PurposeFor maps a local bag category onto a backend bag purpose; recycling has none
func PurposeFor(category model.Category) (Purpose, bool) {
	switch category {
	case model.CategoryResell:
		return PurposeResale, true
	case model.CategoryDonation:
		return PurposeDonation, true
	}
	return "", false
}

// Bag is a backend bag
type Bag struct {
	BagID     int64   `json:"bagId"`
	Purpose   Purpose `json:"purpose"`
	Status    string  `json:"status,omitempty"`
	ItemCount int     `json:"itemCount,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// CreateBagRequest is the body of POST /bags/create
type CreateBagRequest struct {
	Purpose Purpose `json:"purpose"`
}

// ItemRequest is the body used to add an item to a backend bag or to recycling
type ItemRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	DetectedClass string  `json:"detectedClass,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
}

// Item is a backend item
type Item struct {
	ItemID        int64   `json:"itemId"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	DetectedClass string  `json:"detectedClass,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// ItemRequestFrom builds the backend payload for a local bag item
func ItemRequestFrom(category model.Category, item model.BagItem) ItemRequest {
	return ItemRequest{
		Name:          item.FileName,
		Category:      string(category),
		DetectedClass: item.DetectedClass,
		Confidence:    item.Confidence,
	}
}
