// Package listings manages marketplace offers created from resell-bag items.
package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
	"refashion/utils"
)

//go:generate mockgen -source=listings.go -destination=mock_listings.go -package=listings

// FilterAll matches every value of a filter field
const FilterAll = "all"

const defaultCondition = "good"

// Repository stores locally created listings
type Repository interface {
	All(ctx context.Context) ([]model.Listing, error)
	Add(ctx context.Context, listing model.Listing) error
	Find(ctx context.Context, id string) (model.Listing, error)
}

// RemoteCatalog supplies listings published on the backend
type RemoteCatalog interface {
	GetItems(ctx context.Context) ([]model.Listing, error)
}

// CreateRequest is the form submitted to create a listing
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Brand       string   `json:"brand"`
	Size        string   `json:"size"`
	Condition   string   `json:"condition"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Validate enforces the required listing fields
func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" || r.Price <= 0 {
		return fmt.Errorf("%w - title, price and description are required", refashionerrors.ErrInvalidListing)
	}
	if len(r.Images) == 0 {
		return fmt.Errorf("%w - at least one image is required", refashionerrors.ErrInvalidListing)
	}
	return nil
}

// Filter narrows the marketplace by brand and category; empty or "all" matches everything
type Filter struct {
	Brand    string `form:"brand"`
	Category string `form:"category"`
}

// Matches reports whether l passes the filter
func (f Filter) Matches(l model.Listing) bool {
	return matchField(f.Brand, l.Brand) && matchField(f.Category, l.Category)
}

func matchField(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// Facets lists the selectable filter values, each prefixed with "all"
type Facets struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

// FacetsOf collects the distinct brands and categories of items in first-seen order
func FacetsOf(items []model.Listing) Facets {
	facets := Facets{Brands: []string{FilterAll}, Categories: []string{FilterAll}}
	seenBrand := map[string]bool{}
	seenCategory := map[string]bool{}
	for _, item := range items {
		if item.Brand != "" && !seenBrand[item.Brand] {
			seenBrand[item.Brand] = true
			facets.Brands = append(facets.Brands, item.Brand)
		}
		if item.Category != "" && !seenCategory[item.Category] {
			seenCategory[item.Category] = true
			facets.Categories = append(facets.Categories, item.Category)
		}
	}
	return facets
}

// Service creates and browses listings
type Service struct {
	repo   Repository
	remote RemoteCatalog
	now    func() time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithRemoteCatalog merges backend items into List results
func WithRemoteCatalog(remote RemoteCatalog) Option {
	return func(s *Service) { s.remote = remote }
}

// WithClock replaces the wall clock used for createdAt stamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a listing service over repo
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req and stores a listing owned by owner. A nil owner produces an anonymous guest listing.
// bagItem, when given, contributes its detected class.
func (s *Service) Create(ctx context.Context, owner *model.User, req CreateRequest, bagItem *model.BagItem) (model.Listing, error) {
	if err := req.Validate(); err != nil {
		return model.Listing{}, fmt.Errorf("listings: create: %w", err)
	}

	listing := model.Listing{
		ID:          utils.GeneratePrefixedID("listing"),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Brand:       req.Brand,
		Size:        req.Size,
		Condition:   req.Condition,
		Category:    req.Category,
		Images:      append([]string(nil), req.Images...),
		CreatedAt:   s.now().UnixMilli(),
		UserID:      storage.Namespace(owner),
		UserName:    "Anonymous",
	}
	if listing.Condition == "" {
		listing.Condition = defaultCondition
	}
	if owner != nil {
		if owner.Name != "" {
			listing.UserName = owner.Name
		}
		listing.UserEmail = owner.Email
	}
	if bagItem != nil {
		listing.DetectedClass = bagItem.DetectedClass
	}

	if err := s.repo.Add(ctx, listing); err != nil {
		return model.Listing{}, fmt.Errorf("listings: create: %w", err)
	}

	utils.Info("listings: created", map[string]any{
		"listing_id": listing.ID,
		"user_id":    listing.UserID,
		"price":      listing.Price,
	})
	return listing, nil
}

// List returns local listings followed by backend items, filtered. A failing backend yields local listings only.
func (s *Service) List(ctx context.Context, filter Filter) ([]model.Listing, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Listing, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Find looks a listing up among local and backend items
func (s *Service) Find(ctx context.Context, id string) (model.Listing, error) {
	listing, err := s.repo.Find(ctx, id)
	if err == nil {
		return listing, nil
	}
	if !errors.Is(err, refashionerrors.ErrListingNotFound) {
		return model.Listing{}, fmt.Errorf("listings: find %s: %w", id, err)
	}

	for _, item := range s.remoteItems(ctx) {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Listing{}, fmt.Errorf("listings: find %s: %w", id, refashionerrors.ErrListingNotFound)
}

func (s *Service) all(ctx context.Context) ([]model.Listing, error) {
	local, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listings: list: %w", err)
	}
	return append(local, s.remoteItems(ctx)...), nil
}

func (s *Service) remoteItems(ctx context.Context) []model.Listing {
	if s.remote == nil {
		return nil
	}
	items, err := s.remote.GetItems(ctx)
	if err != nil {
		utils.Warn("listings: backend items unavailable, using local listings", map[string]any{"error": err.Error()})
		return nil
	}
	return items
}
