package app

import (
	"context"

	"refashion/internal/auth"
	"refashion/internal/listings"
	model "refashion/internal/models"
)

// BagsView is the bag state as served to clients
type BagsView struct {
	Bags   model.Bags   `json:"bags"`
	Counts model.Counts `json:"counts"`
}

// MarketplaceView is a filtered marketplace page with its filter choices
type MarketplaceView struct {
	Items  []model.Listing `json:"items"`
	Facets listings.Facets `json:"facets"`
}

// Login delegates to the auth container
func (s *Session) Login(ctx context.Context, creds model.Credentials) auth.LoginResult {
	return s.auth.Login(ctx, creds)
}

// Signup delegates to the auth container
func (s *Session) Signup(ctx context.Context, req model.SignupRequest) auth.LoginResult {
	return s.auth.Signup(ctx, req)
}

// ContinueAsGuest adopts the guest identity and returns it
func (s *Session) ContinueAsGuest(ctx context.Context) *model.User {
	return s.auth.ContinueAsGuest(ctx)
}

// Logout clears the identity
func (s *Session) Logout(ctx context.Context) {
	s.auth.Logout(ctx)
}

// CurrentUser returns the signed-in identity or nil
func (s *Session) CurrentUser() *model.User {
	return s.auth.User()
}

// RefreshUser reloads the profile from the backend
func (s *Session) RefreshUser(ctx context.Context) (*model.User, error) {
	return s.auth.RefreshUser(ctx)
}

// BagSnapshot returns the bags and their counts
func (s *Session) BagSnapshot() BagsView {
	return BagsView{Bags: s.bags.Bags(), Counts: s.bags.Counts()}
}

// AddToBag adds an item to a bag and awards its points
func (s *Session) AddToBag(ctx context.Context, category model.Category, item model.BagItem) (model.BagItem, error) {
	return s.bags.AddToBag(ctx, category, item)
}

// RemoveFromBag drops an item from a bag
func (s *Session) RemoveFromBag(ctx context.Context, category model.Category, itemID string) error {
	return s.bags.RemoveFromBag(ctx, category, itemID)
}

// ClearBag empties a bag
func (s *Session) ClearBag(ctx context.Context, category model.Category) error {
	return s.bags.ClearBag(ctx, category)
}

// MoveItem moves an item between bags
func (s *Session) MoveItem(ctx context.Context, from, to model.Category, itemID string) (model.BagItem, bool, error) {
	return s.bags.MoveItem(ctx, from, to, itemID)
}

// RewardsSnapshot returns the balance and history
func (s *Session) RewardsSnapshot() model.Rewards {
	return s.ledger.Snapshot()
}

// AddPoints records an award and returns the points granted
func (s *Session) AddPoints(ctx context.Context, action model.RewardAction, description string) int {
	return s.ledger.AddPoints(ctx, action, description)
}

// ResetPoints wipes the balance and history
func (s *Session) ResetPoints(ctx context.Context) {
	s.ledger.ResetPoints(ctx)
}

// Marketplace lists filtered listings; facets cover every listing so filters can be widened again
func (s *Session) Marketplace(ctx context.Context, filter listings.Filter) (MarketplaceView, error) {
	all, err := s.listings.List(ctx, listings.Filter{})
	if err != nil {
		return MarketplaceView{}, err
	}

	items := make([]model.Listing, 0, len(all))
	for _, item := range all {
		if filter.Matches(item) {
			items = append(items, item)
		}
	}
	return MarketplaceView{Items: items, Facets: listings.FacetsOf(all)}, nil
}

// FindListing looks up one listing
func (s *Session) FindListing(ctx context.Context, id string) (model.Listing, error) {
	return s.listings.Find(ctx, id)
}
