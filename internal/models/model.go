package models

import "time"

// User represents the identity that owns a storage namespace
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Guest  bool   `json:"guest"`
	Points *int   `json:"points,omitempty"`
}

// Credentials carries a login attempt
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries a registration attempt against the secondary backend
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Category names one of the three bags
type Category string

const (
	CategoryRecycle  Category = "recycle"
	CategoryResell   Category = "resell"
	CategoryDonation Category = "donation"
)

// Categories lists the bag categories in display order
var Categories = []Category{CategoryRecycle, CategoryResell, CategoryDonation}

// Valid reports whether c is one of the known bag categories
func (c Category) Valid() bool {
	switch c {
	case CategoryRecycle, CategoryResell, CategoryDonation:
		return true
	}
	return false
}

// BagItem is a classified garment waiting in a bag
type BagItem struct {
	ID            string  `json:"id"`
	FileName      string  `json:"fileName"`
	Preview       string  `json:"preview,omitempty"`
	DetectedClass string  `json:"detectedClass,omitempty"`
	Confidence    float64 `json:"confidence"`
	AddedAt       int64   `json:"addedAt"`
}

// Bags holds the three per-user bag collections
type Bags struct {
	Recycle  []BagItem `json:"recycle"`
	Resell   []BagItem `json:"resell"`
	Donation []BagItem `json:"donation"`
}

// EmptyBags returns bags with three empty, non-nil collections
func EmptyBags() Bags {
	return Bags{
		Recycle:  []BagItem{},
		Resell:   []BagItem{},
		Donation: []BagItem{},
	}
}

// Items returns the collection for a category
func (b Bags) Items(c Category) []BagItem {
	switch c {
	case CategoryRecycle:
		return b.Recycle
	case CategoryResell:
		return b.Resell
	case CategoryDonation:
		return b.Donation
	}
	return nil
}

// WithItems returns a copy of b with the collection for c replaced
func (b Bags) WithItems(c Category, items []BagItem) Bags {
	switch c {
	case CategoryRecycle:
		b.Recycle = items
	case CategoryResell:
		b.Resell = items
	case CategoryDonation:
		b.Donation = items
	}
	return b
}

// Counts is the derived per-category size of a user's bags
type Counts struct {
	Recycle  int `json:"recycle"`
	Resell   int `json:"resell"`
	Donation int `json:"donation"`
	Total    int `json:"total"`
}

// RewardAction identifies why a ledger entry was written
type RewardAction string

const (
	ActionRecycle         RewardAction = "RECYCLE"
	ActionResell          RewardAction = "RESELL"
	ActionDonation        RewardAction = "DONATION"
	ActionCreateListing   RewardAction = "CREATE_LISTING"
	ActionCompleteProfile RewardAction = "COMPLETE_PROFILE"
	ActionPurchase        RewardAction = "purchase"
)

// RewardEntry is one append-only ledger record. Purchases carry ActionPurchase and negative points.
type RewardEntry struct {
	ID          int64        `json:"id"`
	Action      RewardAction `json:"action"`
	Points      int          `json:"points"`
	Description string       `json:"description"`
	Timestamp   int64        `json:"timestamp"`
}

// Rewards is a user's points balance and history
type Rewards struct {
	Points  int           `json:"points"`
	History []RewardEntry `json:"history"`
}

// MilestoneProgress describes where a balance sits between reward milestones
type MilestoneProgress struct {
	Points   int     `json:"points"`
	Previous int     `json:"previous"`
	Next     int     `json:"next"`
	Progress float64 `json:"progress"`
}

// Listing is a marketplace offer created from a resell-bag item
type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Brand         string   `json:"brand,omitempty"`
	Size          string   `json:"size,omitempty"`
	Condition     string   `json:"condition,omitempty"`
	Category      string   `json:"category,omitempty"`
	Images        []string `json:"images"`
	CreatedAt     int64    `json:"createdAt"`
	UserID        string   `json:"userId"`
	UserName      string   `json:"userName"`
	UserEmail     string   `json:"userEmail"`
	DetectedClass string   `json:"detectedClass,omitempty"`
}

// Detection is one object reported by the classification backend
type Detection struct {
	ClassName   string     `json:"class_name"`
	ClassID     int        `json:"class_id"`
	Confidence  float64    `json:"confidence"`
	BoundingBox [4]float64 `json:"bounding_box"`
}

// Recycler is a drop-off location served by the secondary backend
type Recycler struct {
	RecyclerID    int64    `json:"recyclerId"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	Email         string   `json:"email,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Rating        float64  `json:"rating,omitempty"`
	AcceptedItems []string `json:"acceptedItems,omitempty"`
	OpenHours     string   `json:"openHours,omitempty"`
	IsVerified    bool     `json:"isVerified"`
	Description   string   `json:"description,omitempty"`
	Distance      *float64 `json:"distance,omitempty"`
}

// MillisOf converts a time to the unix-millisecond stamps used by persisted records
func MillisOf(t time.Time) int64 {
	return t.UnixMilli()
}
