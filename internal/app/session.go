// Package app wires the auth, bag and ledger containers into one session and keeps them
// consistent with other sessions sharing the same store.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"refashion/internal/auth"
	"refashion/internal/bag"
	"refashion/internal/events"
	"refashion/internal/listings"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/rewards"
	"refashion/internal/storage"
	"refashion/utils"
)

//go:generate mockgen -source=session.go -destination=mock_session.go -package=app

// Detector classifies an uploaded garment photo
type Detector interface {
	Detect(ctx context.Context, fileName string, image io.Reader) ([]model.Detection, error)
}

// ProfileUpdater stores an edited profile remotely
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, user model.User) (model.User, error)
}

// RecyclerDirectory lists recycler drop-off points
type RecyclerDirectory interface {
	AllRecyclers(ctx context.Context) ([]model.Recycler, error)
	NearbyRecyclers(ctx context.Context, latitude, longitude, radiusKm float64) ([]model.Recycler, error)
	VerifiedRecyclers(ctx context.Context) ([]model.Recycler, error)
}

// Deps are the collaborators of a Session. Store is required; everything else is optional.
type Deps struct {
	Store     storage.KVStore
	Bus       events.Bus
	Listings  listings.Repository
	Catalog   listings.RemoteCatalog
	Backend   auth.Backend
	Registrar auth.Registrar
	Minter    *auth.TokenMinter
	BagSync   bag.RemoteSync
	Detector  Detector
	Profiles  ProfileUpdater
	Recyclers RecyclerDirectory
	Clock     func() time.Time
}

// Session is the typed application state of one client: identity, bags and rewards
type Session struct {
	id        string
	bus       events.Bus
	auth      *auth.Container
	bags      *bag.Container
	ledger    *rewards.Ledger
	listings  *listings.Service
	detector  Detector
	profiles  ProfileUpdater
	recyclers RecyclerDirectory

	// reloadMu orders container reloads; each one reads the namespace it targets while holding it
	reloadMu sync.Mutex

	mu      sync.Mutex
	started bool
	sub     events.Subscription
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSession builds the containers of a session. Call Start before serving requests.
func NewSession(deps Deps) *Session {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &Session{
		id:        utils.GenerateID(),
		bus:       deps.Bus,
		detector:  deps.Detector,
		profiles:  deps.Profiles,
		recyclers: deps.Recyclers,
	}

	var notifier events.ChangeNotifier = events.Discard
	if deps.Bus != nil {
		notifier = events.NewNotifier(deps.Bus, s.id)
	}

	s.ledger = rewards.NewLedger(deps.Store, rewards.WithNotifier(notifier), rewards.WithClock(clock))

	bagOpts := []bag.Option{bag.WithNotifier(notifier), bag.WithClock(clock)}
	if deps.BagSync != nil {
		bagOpts = append(bagOpts, bag.WithRemoteSync(deps.BagSync))
	}
	s.bags = bag.NewContainer(deps.Store, s.ledger, bagOpts...)

	authOpts := []auth.Option{auth.WithNotifier(notifier), auth.WithClock(clock)}
	if deps.Backend != nil {
		authOpts = append(authOpts, auth.WithBackend(deps.Backend))
	}
	if deps.Registrar != nil {
		authOpts = append(authOpts, auth.WithRegistrar(deps.Registrar))
	}
	if deps.Minter != nil {
		authOpts = append(authOpts, auth.WithTokenMinter(deps.Minter))
	}
	s.auth = auth.NewContainer(deps.Store, authOpts...)

	repo := deps.Listings
	if repo == nil {
		repo = listings.NewKVRepository(deps.Store, notifier)
	}
	listingOpts := []listings.Option{listings.WithClock(clock)}
	if deps.Catalog != nil {
		listingOpts = append(listingOpts, listings.WithRemoteCatalog(deps.Catalog))
	}
	s.listings = listings.NewService(repo, listingOpts...)

	return s
}

// ID identifies the session on the bus
func (s *Session) ID() string { return s.id }

// Auth returns the auth container
func (s *Session) Auth() *auth.Container { return s.auth }

// Bags returns the bag container
func (s *Session) Bags() *bag.Container { return s.bags }

// Ledger returns the rewards ledger
func (s *Session) Ledger() *rewards.Ledger { return s.ledger }

// Listings returns the marketplace service
func (s *Session) Listings() *listings.Service { return s.listings }

// Start restores the persisted identity, loads its bags and rewards and begins following
// changes published by other sessions.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if err := s.auth.Resync(ctx); err != nil {
		return fmt.Errorf("session: restore identity: %w", err)
	}
	if _, err := s.reload(ctx); err != nil {
		return err
	}
	// listeners may run out of order when identities change quickly, so the announced
	// namespace is only logged and the reload follows the identity current at that point
	s.auth.OnIdentityChange(func(ctx context.Context, announced string) {
		namespace, err := s.reload(ctx)
		if err != nil {
			utils.Error("session: reload after identity change failed", map[string]any{
				"session":   s.id,
				"namespace": namespace,
				"announced": announced,
				"error":     err.Error(),
			})
		}
	})

	if s.bus != nil {
		sub, err := s.bus.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("session: subscribe: %w", err)
		}
		loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.sub, s.cancel, s.done = sub, cancel, make(chan struct{})
		go s.follow(loopCtx, sub)
	}

	s.started = true
	utils.Info("session: started", map[string]any{"session": s.id, "namespace": s.auth.Namespace()})
	return nil
}

// Close stops following the bus and waits for the event loop to exit
func (s *Session) Close() error {
	s.mu.Lock()
	sub, cancel, done := s.sub, s.cancel, s.done
	s.sub, s.cancel, s.done = nil, nil, nil
	s.mu.Unlock()

	if sub == nil {
		return nil
	}
	cancel()
	err := sub.Close()
	<-done
	return err
}

// reload points bags and ledger at the namespace of the current identity and returns it
func (s *Session) reload(ctx context.Context) (string, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	namespace := s.auth.Namespace()
	if err := s.ledger.Reload(ctx, namespace); err != nil {
		return namespace, fmt.Errorf("session: load rewards: %w", err)
	}
	if err := s.bags.Reload(ctx, namespace); err != nil {
		return namespace, fmt.Errorf("session: load bags: %w", err)
	}
	return namespace, nil
}

// reloadIfActive reloads one container when namespace is the current identity's
func (s *Session) reloadIfActive(ctx context.Context, namespace string, load func(context.Context, string) error) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if namespace != s.auth.Namespace() {
		return nil
	}
	return load(ctx, namespace)
}

func (s *Session) follow(ctx context.Context, sub events.Subscription) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			s.apply(ctx, event)
		}
	}
}

// apply refreshes whatever container a foreign write touched
func (s *Session) apply(ctx context.Context, event events.Event) {
	if event.Origin == s.id {
		return
	}

	var err error
	switch event.Key {
	case storage.KeyToken, storage.KeyUser:
		err = s.auth.Resync(ctx)
	case storage.KeyBags:
		err = s.reloadIfActive(ctx, event.Namespace, s.bags.Reload)
	case storage.KeyRewards:
		err = s.reloadIfActive(ctx, event.Namespace, s.ledger.Reload)
	default:
		return
	}

	if err != nil {
		utils.Warn("session: failed to apply remote change", map[string]any{
			"session":   s.id,
			"namespace": event.Namespace,
			"key":       event.Key,
			"error":     err.Error(),
		})
		return
	}
	utils.Debug("session: applied remote change", map[string]any{
		"session": s.id,
		"key":     event.Key,
		"origin":  event.Origin,
	})
}

// CreateListing publishes a listing for the current user. When bagItemID names an item of the
// resell bag, the item is consumed and its preview is used if no image was supplied. The item
// is taken before the listing is written so it can back at most one listing, and is put back
// if the listing is rejected.
func (s *Session) CreateListing(ctx context.Context, req listings.CreateRequest, bagItemID string) (model.Listing, int, error) {
	owner := s.auth.User()
	namespace := storage.Namespace(owner)

	var source *model.BagItem
	var taken bag.TakenItem
	if bagItemID != "" {
		var ok bool
		var err error
		taken, ok, err = s.bags.TakeItem(ctx, model.CategoryResell, bagItemID)
		if err != nil {
			return model.Listing{}, 0, fmt.Errorf("session: create listing: %w", err)
		}
		if !ok {
			return model.Listing{}, 0, fmt.Errorf("session: create listing: %w - %s", refashionerrors.ErrBagItemNotFound, bagItemID)
		}
		source, namespace = &taken.Item, taken.Namespace
		if len(req.Images) == 0 && taken.Item.Preview != "" {
			req.Images = []string{taken.Item.Preview}
		}
	}

	listing, err := s.listings.Create(ctx, owner, req, source)
	if err != nil {
		if source != nil {
			if restoreErr := s.bags.RestoreItem(ctx, taken); restoreErr != nil {
				utils.Error("session: failed to restore bag item", map[string]any{
					"session":   s.id,
					"namespace": taken.Namespace,
					"item_id":   taken.Item.ID,
					"error":     restoreErr.Error(),
				})
			}
		}
		return model.Listing{}, 0, err
	}

	earned := s.ledger.AddPointsTo(ctx, namespace, model.ActionCreateListing, "Created listing: "+listing.Title)
	return listing, earned, nil
}

// PurchaseResult is the outcome of buying a listing with points
type PurchaseResult struct {
	Listing model.Listing     `json:"listing"`
	Cost    int               `json:"cost"`
	Entry   model.RewardEntry `json:"entry"`
	Balance int               `json:"balance"`
}

// Purchase buys a listing with points at ten points per currency unit, rounded up
func (s *Session) Purchase(ctx context.Context, listingID string) (PurchaseResult, error) {
	listing, err := s.listings.Find(ctx, listingID)
	if err != nil {
		return PurchaseResult{}, err
	}

	cost := rewards.PurchaseCost(listing.Price)
	entry, err := s.ledger.Spend(ctx, cost, "Purchased "+listing.Title)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("session: purchase %s: %w", listingID, err)
	}

	return PurchaseResult{Listing: listing, Cost: cost, Entry: entry, Balance: s.ledger.Points()}, nil
}

// DetectionResult carries the raw detections and the derived bag suggestion
type DetectionResult struct {
	Detections []model.Detection `json:"detections"`
	Suggestion bag.Suggestion    `json:"suggestion"`
	Item       model.BagItem     `json:"item"`
}

// Detect classifies an uploaded image and proposes bags for it
func (s *Session) Detect(ctx context.Context, fileName string, image io.Reader) (DetectionResult, error) {
	if s.detector == nil {
		return DetectionResult{}, fmt.Errorf("session: detect: %w", refashionerrors.ErrRemoteUnavailable)
	}
	detections, err := s.detector.Detect(ctx, fileName, image)
	if err != nil {
		return DetectionResult{}, fmt.Errorf("session: detect: %w", err)
	}

	suggestion := bag.Classify(detections)
	return DetectionResult{
		Detections: detections,
		Suggestion: suggestion,
		Item:       bag.ItemFromDetection(fileName, "", suggestion.Top),
	}, nil
}

// UpdateProfile stores the edited profile remotely, then merges the answer into the local identity
func (s *Session) UpdateProfile(ctx context.Context, edit model.User) (model.User, error) {
	current := s.auth.User()
	if current == nil {
		return model.User{}, fmt.Errorf("session: update profile: %w", refashionerrors.ErrNotAuthenticated)
	}

	merged := *current
	if edit.Name != "" {
		merged.Name = edit.Name
	}
	if edit.Email != "" {
		merged.Email = edit.Email
	}

	if s.profiles != nil {
		stored, err := s.profiles.UpdateProfile(ctx, merged)
		if err != nil {
			return model.User{}, fmt.Errorf("session: update profile: %w", err)
		}
		if stored.Name != "" {
			merged.Name = stored.Name
		}
		if stored.Email != "" {
			merged.Email = stored.Email
		}
		if stored.Points != nil {
			merged.Points = stored.Points
		}
	}

	if err := s.auth.UpdateUser(ctx, merged); err != nil {
		return model.User{}, err
	}
	return merged, nil
}

// RecyclerQuery selects which recyclers to list. Coordinates switch to a nearby search.
type RecyclerQuery struct {
	Latitude     *float64 `form:"latitude"`
	Longitude    *float64 `form:"longitude"`
	RadiusKm     float64  `form:"radius_km"`
	VerifiedOnly bool     `form:"verified"`
}

// Recyclers lists drop-off points; a failing backend yields an empty list
func (s *Session) Recyclers(ctx context.Context, q RecyclerQuery) []model.Recycler {
	if s.recyclers == nil {
		return []model.Recycler{}
	}

	var (
		out []model.Recycler
		err error
	)
	switch {
	case q.Latitude != nil && q.Longitude != nil:
		out, err = s.recyclers.NearbyRecyclers(ctx, *q.Latitude, *q.Longitude, q.RadiusKm)
	case q.VerifiedOnly:
		out, err = s.recyclers.VerifiedRecyclers(ctx)
	default:
		out, err = s.recyclers.AllRecyclers(ctx)
	}
	if err != nil {
		utils.Warn("session: recycler lookup failed", map[string]any{"error": err.Error()})
		return []model.Recycler{}
	}
	if out == nil {
		out = []model.Recycler{}
	}
	return out
}

// Progress reports the current balance against the reward milestones
func (s *Session) Progress() model.MilestoneProgress {
	return rewards.Progress(s.ledger.Points())
}

// HandleUnauthorized clears credentials after a backend rejected the token
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.auth.Unauthorized(ctx)
}
