package handler

import (
	"context"
	"io"
	"net/http"

	"refashion/internal/app"
	"refashion/internal/auth"
	"refashion/internal/listings"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/services/refashion/helpers"
	"refashion/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=refashion_handler.go -destination=mock_refashion_handler.go -package=handler

type RefashionServiceInterface interface {
	Login(ctx context.Context, creds model.Credentials) auth.LoginResult
	Signup(ctx context.Context, req model.SignupRequest) auth.LoginResult
	ContinueAsGuest(ctx context.Context) *model.User
	Logout(ctx context.Context)
	CurrentUser() *model.User
	RefreshUser(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, edit model.User) (model.User, error)

	BagSnapshot() app.BagsView
	AddToBag(ctx context.Context, category model.Category, item model.BagItem) (model.BagItem, error)
	RemoveFromBag(ctx context.Context, category model.Category, itemID string) error
	ClearBag(ctx context.Context, category model.Category) error
	MoveItem(ctx context.Context, from, to model.Category, itemID string) (model.BagItem, bool, error)

	RewardsSnapshot() model.Rewards
	AddPoints(ctx context.Context, action model.RewardAction, description string) int
	ResetPoints(ctx context.Context)
	Progress() model.MilestoneProgress

	Marketplace(ctx context.Context, filter listings.Filter) (app.MarketplaceView, error)
	FindListing(ctx context.Context, id string) (model.Listing, error)
	CreateListing(ctx context.Context, req listings.CreateRequest, bagItemID string) (model.Listing, int, error)
	Purchase(ctx context.Context, listingID string) (app.PurchaseResult, error)

	Detect(ctx context.Context, fileName string, image io.Reader) (app.DetectionResult, error)
	Recyclers(ctx context.Context, q app.RecyclerQuery) []model.Recycler
}

type RefashionHandler struct {
	service RefashionServiceInterface
}

func NewRefashionHandler(service RefashionServiceInterface) *RefashionHandler {
	return &RefashionHandler{service: service}
}

// LoginHandler handles POST /auth/login
func (h *RefashionHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	res := h.service.Login(c.Request.Context(), model.Credentials{Email: req.Email, Password: req.Password})
	h.respondAuth(c, "LoginHandler", res, "login successful")
}

// SignupHandler handles POST /auth/signup
func (h *RefashionHandler) SignupHandler(c *gin.Context) {
	var req helpers.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignupHandler", err)
		return
	}

	res := h.service.Signup(c.Request.Context(), model.SignupRequest{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	h.respondAuth(c, "SignupHandler", res, "signup successful")
}

func (h *RefashionHandler) respondAuth(c *gin.Context, handlerName string, res auth.LoginResult, message string) {
	if !res.Success {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  http.StatusBadRequest,
			"message": res.Error,
			"data":    helpers.AuthResponse{Success: false, Error: res.Error},
		})
		utils.Warn(handlerName+": rejected", map[string]any{"reason": res.Error})
		return
	}

	user := res.User
	utils.JSONResponse(c, http.StatusOK, helpers.AuthResponse{Success: true, User: user}, message)
	fields := map[string]any{}
	if user != nil {
		fields["user_id"] = user.ID
	}
	helpers.LogSuccess(handlerName, message, fields)
}

// GuestHandler handles POST /auth/guest
func (h *RefashionHandler) GuestHandler(c *gin.Context) {
	user := h.service.ContinueAsGuest(c.Request.Context())
	utils.JSONResponse(c, http.StatusOK, helpers.AuthResponse{Success: true, User: user}, "continuing as guest")
	helpers.LogSuccess("GuestHandler", "continuing as guest", nil)
}

// LogoutHandler handles POST /auth/logout
func (h *RefashionHandler) LogoutHandler(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	utils.JSONResponse(c, http.StatusOK, nil, "logged out")
	helpers.LogSuccess("LogoutHandler", "logged out", nil)
}

// MeHandler handles GET /auth/me
func (h *RefashionHandler) MeHandler(c *gin.Context) {
	user := h.service.CurrentUser()
	if user == nil {
		helpers.RespondError(c, "MeHandler", refashionerrors.ErrNotAuthenticated, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}

// RefreshHandler handles POST /auth/refresh
func (h *RefashionHandler) RefreshHandler(c *gin.Context) {
	user, err := h.service.RefreshUser(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "RefreshHandler", err, nil)
		return
	}
	if user == nil {
		utils.JSONResponse(c, http.StatusOK, nil, "profile not refreshed")
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "profile refreshed")
	helpers.LogSuccess("RefreshHandler", "profile refreshed", map[string]any{"user_id": user.ID})
}

// UpdateProfileHandler handles PUT /auth/profile
func (h *RefashionHandler) UpdateProfileHandler(c *gin.Context) {
	var req helpers.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		helpers.RespondError(c, "UpdateProfileHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "profile updated successfully")
	helpers.LogSuccess("UpdateProfileHandler", "profile updated successfully", map[string]any{"user_id": user.ID})
}

// GetBagsHandler handles GET /bags
func (h *RefashionHandler) GetBagsHandler(c *gin.Context) {
	view := h.service.BagSnapshot()
	utils.JSONResponse(c, http.StatusOK, view, "bags retrieved successfully")
}

// AddItemHandler handles POST /bags/:category/items
func (h *RefashionHandler) AddItemHandler(c *gin.Context) {
	category := model.Category(c.Param("category"))
	var req helpers.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddItemHandler", err)
		return
	}

	item, err := h.service.AddToBag(c.Request.Context(), category, model.BagItem{
		FileName:      req.FileName,
		Preview:       req.Preview,
		DetectedClass: req.DetectedClass,
		Confidence:    req.Confidence,
	})
	if err != nil {
		helpers.RespondError(c, "AddItemHandler", err, map[string]any{"category": string(category)})
		return
	}

	resp := helpers.AddItemResponse{
		Item:    item,
		Counts:  h.service.BagSnapshot().Counts,
		Balance: h.service.RewardsSnapshot().Points,
	}
	utils.JSONResponse(c, http.StatusCreated, resp, "item added to bag")
	helpers.LogSuccess("AddItemHandler", "item added to bag", map[string]any{
		"category": string(category),
		"item_id":  item.ID,
	})
}

// RemoveItemHandler handles DELETE /bags/:category/items/:item_id
func (h *RefashionHandler) RemoveItemHandler(c *gin.Context) {
	category := model.Category(c.Param("category"))
	itemID := c.Param("item_id")

	if err := h.service.RemoveFromBag(c.Request.Context(), category, itemID); err != nil {
		helpers.RespondError(c, "RemoveItemHandler", err, map[string]any{"category": string(category), "item_id": itemID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, h.service.BagSnapshot(), "item removed from bag")
	helpers.LogSuccess("RemoveItemHandler", "item removed from bag", map[string]any{
		"category": string(category),
		"item_id":  itemID,
	})
}

// ClearBagHandler handles DELETE /bags/:category
func (h *RefashionHandler) ClearBagHandler(c *gin.Context) {
	category := model.Category(c.Param("category"))

	if err := h.service.ClearBag(c.Request.Context(), category); err != nil {
		helpers.RespondError(c, "ClearBagHandler", err, map[string]any{"category": string(category)})
		return
	}
	utils.JSONResponse(c, http.StatusOK, h.service.BagSnapshot(), "bag cleared")
	helpers.LogSuccess("ClearBagHandler", "bag cleared", map[string]any{"category": string(category)})
}

// MoveItemHandler handles POST /bags/move
func (h *RefashionHandler) MoveItemHandler(c *gin.Context) {
	var req helpers.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "MoveItemHandler", err)
		return
	}

	item, moved, err := h.service.MoveItem(c.Request.Context(), req.From, req.To, req.ItemID)
	if err != nil {
		helpers.RespondError(c, "MoveItemHandler", err, map[string]any{"item_id": req.ItemID})
		return
	}

	resp := helpers.MoveItemResponse{Moved: moved, Counts: h.service.BagSnapshot().Counts}
	message := "item not found, nothing moved"
	if moved {
		resp.Item = &item
		message = "item moved"
	}
	utils.JSONResponse(c, http.StatusOK, resp, message)
	helpers.LogSuccess("MoveItemHandler", message, map[string]any{
		"from":    string(req.From),
		"to":      string(req.To),
		"item_id": req.ItemID,
	})
}

// GetRewardsHandler handles GET /rewards
func (h *RefashionHandler) GetRewardsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.RewardsSnapshot(), "rewards retrieved successfully")
}

// AddPointsHandler handles POST /rewards/points
func (h *RefashionHandler) AddPointsHandler(c *gin.Context) {
	var req helpers.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddPointsHandler", err)
		return
	}

	awarded := h.service.AddPoints(c.Request.Context(), req.Action, req.Description)
	resp := helpers.AddPointsResponse{Awarded: awarded, Balance: h.service.RewardsSnapshot().Points}
	utils.JSONResponse(c, http.StatusCreated, resp, "points recorded")
	helpers.LogSuccess("AddPointsHandler", "points recorded", map[string]any{
		"action":  string(req.Action),
		"awarded": awarded,
	})
}

// ResetPointsHandler handles POST /rewards/reset
func (h *RefashionHandler) ResetPointsHandler(c *gin.Context) {
	h.service.ResetPoints(c.Request.Context())
	utils.JSONResponse(c, http.StatusOK, h.service.RewardsSnapshot(), "rewards reset")
	helpers.LogSuccess("ResetPointsHandler", "rewards reset", nil)
}

// ProgressHandler handles GET /rewards/progress
func (h *RefashionHandler) ProgressHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.Progress(), "progress retrieved successfully")
}

// ListListingsHandler handles GET /listings
func (h *RefashionHandler) ListListingsHandler(c *gin.Context) {
	var filter listings.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		helpers.HandleBindError(c, "ListListingsHandler", err)
		return
	}

	view, err := h.service.Marketplace(c.Request.Context(), filter)
	if err != nil {
		helpers.RespondError(c, "ListListingsHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, view, "listings retrieved successfully")
	helpers.LogSuccess("ListListingsHandler", "listings retrieved successfully", map[string]any{
		"brand":    filter.Brand,
		"category": filter.Category,
		"count":    len(view.Items),
	})
}

// GetListingHandler handles GET /listings/:listing_id
func (h *RefashionHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.FindListing(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// CreateListingHandler handles POST /listings
func (h *RefashionHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	listing, earned, err := h.service.CreateListing(c.Request.Context(), req.CreateRequest, req.BagItemID)
	if err != nil {
		helpers.RespondError(c, "CreateListingHandler", err, map[string]any{"bag_item_id": req.BagItemID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.CreateListingResponse{Listing: listing, PointsEarned: earned}, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ID,
		"points":     earned,
	})
}

// PurchaseHandler handles POST /listings/:listing_id/purchase
func (h *RefashionHandler) PurchaseHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	res, err := h.service.Purchase(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "PurchaseHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "purchase completed")
	helpers.LogSuccess("PurchaseHandler", "purchase completed", map[string]any{
		"listing_id": listingID,
		"cost":       res.Cost,
		"balance":    res.Balance,
	})
}

// DetectHandler handles POST /detect with a multipart "file" field
func (h *RefashionHandler) DetectHandler(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		helpers.HandleBindError(c, "DetectHandler", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		helpers.HandleBindError(c, "DetectHandler", err)
		return
	}
	defer file.Close()

	res, err := h.service.Detect(c.Request.Context(), header.Filename, file)
	if err != nil {
		helpers.RespondError(c, "DetectHandler", err, map[string]any{"file_name": header.Filename})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "image classified")
	helpers.LogSuccess("DetectHandler", "image classified", map[string]any{
		"file_name":  header.Filename,
		"detections": len(res.Detections),
		"resellable": res.Suggestion.Resellable,
	})
}

// RecyclersHandler handles GET /recyclers
func (h *RefashionHandler) RecyclersHandler(c *gin.Context) {
	var q app.RecyclerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "RecyclersHandler", err)
		return
	}

	recyclers := h.service.Recyclers(c.Request.Context(), q)
	utils.JSONResponse(c, http.StatusOK, recyclers, "recyclers retrieved successfully")
	helpers.LogSuccess("RecyclersHandler", "recyclers retrieved successfully", map[string]any{"count": len(recyclers)})
}
