package growloop

import (
	"context"
	"fmt"

	model "refashion/internal/models"
)

// BagSync mirrors locally added bag items into the backend
type BagSync struct {
	client *Client
}

// NewBagSync creates a BagSync on top of client
func NewBagSync(client *Client) *BagSync {
	return &BagSync{client: client}
}

// SyncItem sends recycle items to /items/recycle and resell/donation items into the caller's
// first backend bag of the matching purpose, creating that bag when none exists.
func (s *BagSync) SyncItem(ctx context.Context, category model.Category, item model.BagItem) error {
	req := ItemRequestFrom(category, item)

	purpose, ok := PurposeFor(category)
	if !ok {
		if _, err := s.client.AddForRecycling(ctx, req); err != nil {
			return fmt.Errorf("growloop: sync recycle item %s: %w", item.ID, err)
		}
		return nil
	}

	bags, err := s.client.BagsByPurpose(ctx, purpose)
	if err != nil {
		return fmt.Errorf("growloop: sync %s item %s: %w", category, item.ID, err)
	}

	var bag Bag
	if len(bags) > 0 {
		bag = bags[0]
	} else {
		bag, err = s.client.CreateBag(ctx, CreateBagRequest{Purpose: purpose})
		if err != nil {
			return fmt.Errorf("growloop: create %s bag: %w", purpose, err)
		}
	}

	if _, err := s.client.AddItemToBag(ctx, bag.BagID, req); err != nil {
		return fmt.Errorf("growloop: add item %s to bag %d: %w", item.ID, bag.BagID, err)
	}
	return nil
}
