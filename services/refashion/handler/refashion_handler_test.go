package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"refashion/internal/app"
	"refashion/internal/auth"
	"refashion/internal/bag"
	"refashion/internal/listings"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// newTestRouter registers every handler on a bare gin engine
func newTestRouter(h *RefashionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", h.LoginHandler)
	router.POST("/auth/guest", h.GuestHandler)
	router.GET("/auth/me", h.MeHandler)
	router.POST("/auth/refresh", h.RefreshHandler)
	router.GET("/bags", h.GetBagsHandler)
	router.POST("/bags/:category/items", h.AddItemHandler)
	router.DELETE("/bags/:category/items/:item_id", h.RemoveItemHandler)
	router.DELETE("/bags/:category", h.ClearBagHandler)
	router.POST("/bags/move", h.MoveItemHandler)
	router.POST("/rewards/points", h.AddPointsHandler)
	router.GET("/rewards/progress", h.ProgressHandler)
	router.GET("/listings", h.ListListingsHandler)
	router.POST("/listings", h.CreateListingHandler)
	router.GET("/listings/:listing_id", h.GetListingHandler)
	router.POST("/listings/:listing_id/purchase", h.PurchaseHandler)
	router.POST("/detect", h.DetectHandler)
	router.GET("/recyclers", h.RecyclersHandler)
	return router
}

// doJSON performs a request and decodes the response envelope
func doJSON(t *testing.T, router http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		expectedUserID string
	}{
		{
			name:        "success",
			requestBody: loginBody("test@gmail.com", "test"),
			mockSetup: func() {
				mockService.EXPECT().Login(gomock.Any(), model.Credentials{Email: "test@gmail.com", Password: "test"}).
					Return(auth.LoginResult{Success: true, User: &model.User{ID: "test-user-123"}})
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "login successful",
			expectedUserID: "test-user-123",
		},
		{
			name:        "validation_failure",
			requestBody: loginBody("", ""),
			mockSetup: func() {
				mockService.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(auth.LoginResult{Error: "email and password are required"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "email and password are required",
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			status, resp := doJSON(t, router, http.MethodPost, "/auth/login", tc.requestBody)
			require.Equal(t, tc.expectedStatus, status)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.expectedUserID != "" {
				data := resp["data"].(map[string]any)
				require.Equal(t, tc.expectedUserID, data["user"].(map[string]any)["id"])
			}
		})
	}
}

func loginBody(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().CurrentUser().Return(nil)
	status, resp := doJSON(t, router, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "authentication required", resp["message"])

	mockService.EXPECT().CurrentUser().Return(&model.User{ID: "guest", Guest: true})
	status, resp = doJSON(t, router, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, "guest", data["id"])
	require.Equal(t, true, data["guest"])
}

func TestRefreshHandler_NoProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().RefreshUser(gomock.Any()).Return(nil, nil)
	status, resp := doJSON(t, router, http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, resp["data"])
}

func TestAddItemHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	tests := []struct {
		name           string
		path           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_recycle",
			path:        "/bags/recycle/items",
			requestBody: map[string]any{"file_name": "shirt.png", "detected_class": "recyclable", "confidence": 0.9},
			mockSetup: func() {
				mockService.EXPECT().
					AddToBag(gomock.Any(), model.CategoryRecycle, model.BagItem{FileName: "shirt.png", DetectedClass: "recyclable", Confidence: 0.9}).
					Return(model.BagItem{ID: "recycle-1", FileName: "shirt.png", AddedAt: 1}, nil)
				mockService.EXPECT().BagSnapshot().Return(app.BagsView{Counts: model.Counts{Recycle: 1, Total: 1}})
				mockService.EXPECT().RewardsSnapshot().Return(model.Rewards{Points: 10})
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "item added to bag",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "recycle-1", data["item"].(map[string]any)["id"])
				require.Equal(t, 1.0, data["counts"].(map[string]any)["total"])
				require.Equal(t, 10.0, data["balance"])
			},
		},
		{
			name:        "invalid_category",
			path:        "/bags/compost/items",
			requestBody: map[string]any{"file_name": "shirt.png"},
			mockSetup: func() {
				mockService.EXPECT().AddToBag(gomock.Any(), model.Category("compost"), gomock.Any()).
					Return(model.BagItem{}, fmt.Errorf("bag: %w", refashionerrors.ErrInvalidCategory))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bag category",
		},
		{
			name:           "missing_file_name",
			path:           "/bags/recycle/items",
			requestBody:    map[string]any{"preview": "x"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "confidence_out_of_range",
			path:           "/bags/recycle/items",
			requestBody:    map[string]any{"file_name": "a.png", "confidence": 3},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			status, resp := doJSON(t, router, http.MethodPost, tc.path, tc.requestBody)
			require.Equal(t, tc.expectedStatus, status)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestMoveItemHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	body := map[string]any{"from": "resell", "to": "donation", "item_id": "resell-1"}

	mockService.EXPECT().MoveItem(gomock.Any(), model.CategoryResell, model.CategoryDonation, "resell-1").
		Return(model.BagItem{ID: "donation-2"}, true, nil)
	mockService.EXPECT().BagSnapshot().Return(app.BagsView{Counts: model.Counts{Donation: 1, Total: 1}})
	status, resp := doJSON(t, router, http.MethodPost, "/bags/move", body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "item moved", resp["message"])
	data := resp["data"].(map[string]any)
	require.Equal(t, true, data["moved"])
	require.Equal(t, "donation-2", data["item"].(map[string]any)["id"])

	mockService.EXPECT().MoveItem(gomock.Any(), model.CategoryResell, model.CategoryDonation, "resell-1").
		Return(model.BagItem{}, false, nil)
	mockService.EXPECT().BagSnapshot().Return(app.BagsView{})
	status, resp = doJSON(t, router, http.MethodPost, "/bags/move", body)
	require.Equal(t, http.StatusOK, status)
	data = resp["data"].(map[string]any)
	require.Equal(t, false, data["moved"])
	require.NotContains(t, data, "item")

	status, _ = doJSON(t, router, http.MethodPost, "/bags/move", map[string]any{"from": "resell"})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRemoveAndClearHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().RemoveFromBag(gomock.Any(), model.CategoryResell, "resell-1").Return(nil)
	mockService.EXPECT().BagSnapshot().Return(app.BagsView{Bags: model.EmptyBags()}).Times(2)
	status, _ := doJSON(t, router, http.MethodDelete, "/bags/resell/items/resell-1", nil)
	require.Equal(t, http.StatusOK, status)

	mockService.EXPECT().ClearBag(gomock.Any(), model.CategoryDonation).Return(nil)
	status, resp := doJSON(t, router, http.MethodDelete, "/bags/donation", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "bag cleared", resp["message"])
}

func TestAddPointsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().AddPoints(gomock.Any(), model.ActionCreateListing, "bonus").Return(20)
	mockService.EXPECT().RewardsSnapshot().Return(model.Rewards{Points: 40})

	status, resp := doJSON(t, router, http.MethodPost, "/rewards/points", map[string]any{"action": "CREATE_LISTING", "description": "bonus"})
	require.Equal(t, http.StatusCreated, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, 20.0, data["awarded"])
	require.Equal(t, 40.0, data["balance"])

	status, _ = doJSON(t, router, http.MethodPost, "/rewards/points", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestProgressHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().Progress().Return(model.MilestoneProgress{Points: 75, Previous: 50, Next: 100, Progress: 50})
	status, resp := doJSON(t, router, http.MethodGet, "/rewards/progress", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 100.0, resp["data"].(map[string]any)["next"])
}

func TestListingHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().Marketplace(gomock.Any(), listings.Filter{Brand: "Zara", Category: "all"}).
		Return(app.MarketplaceView{
			Items:  []model.Listing{{ID: "l1", Brand: "Zara"}},
			Facets: listings.Facets{Brands: []string{"all", "Zara"}, Categories: []string{"all"}},
		}, nil)
	status, resp := doJSON(t, router, http.MethodGet, "/listings?brand=Zara&category=all", nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Len(t, data["items"], 1)

	mockService.EXPECT().FindListing(gomock.Any(), "missing").Return(model.Listing{}, refashionerrors.ErrListingNotFound)
	status, resp = doJSON(t, router, http.MethodGet, "/listings/missing", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "listing not found", resp["message"])

	create := map[string]any{
		"title": "Coat", "description": "Warm", "price": 12.5,
		"images": []string{"a.png"}, "bag_item_id": "resell-1",
	}
	mockService.EXPECT().CreateListing(gomock.Any(), gomock.Any(), "resell-1").DoAndReturn(
		func(_ any, req listings.CreateRequest, _ string) (model.Listing, int, error) {
			require.Equal(t, "Coat", req.Title)
			require.Equal(t, 12.5, req.Price)
			return model.Listing{ID: "listing-1", Title: req.Title}, 20, nil
		})
	status, resp = doJSON(t, router, http.MethodPost, "/listings", create)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, 20.0, resp["data"].(map[string]any)["points_earned"])

	mockService.EXPECT().CreateListing(gomock.Any(), gomock.Any(), "").
		Return(model.Listing{}, 0, fmt.Errorf("listings: create: %w", refashionerrors.ErrInvalidListing))
	status, resp = doJSON(t, router, http.MethodPost, "/listings", map[string]any{"title": "x"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid listing details", resp["message"])
}

func TestPurchaseHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success",
			mockSetup: func() {
				mockService.EXPECT().Purchase(gomock.Any(), "listing-1").
					Return(app.PurchaseResult{Cost: 30, Balance: 20}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "purchase completed",
		},
		{
			name: "insufficient_points",
			mockSetup: func() {
				mockService.EXPECT().Purchase(gomock.Any(), "listing-1").
					Return(app.PurchaseResult{}, fmt.Errorf("session: purchase: %w", refashionerrors.ErrInsufficientPoints))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "insufficient points",
		},
		{
			name: "generic_error",
			mockSetup: func() {
				mockService.EXPECT().Purchase(gomock.Any(), "listing-1").
					Return(app.PurchaseResult{}, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			status, resp := doJSON(t, router, http.MethodPost, "/listings/listing-1/purchase", nil)
			require.Equal(t, tc.expectedStatus, status)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}

func TestDetectHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "jacket.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	mockService.EXPECT().Detect(gomock.Any(), "jacket.jpg", gomock.Any()).DoAndReturn(
		func(_ any, _ string, image io.Reader) (app.DetectionResult, error) {
			raw, err := io.ReadAll(image)
			require.NoError(t, err)
			require.Equal(t, "fake image", string(raw))
			return app.DetectionResult{Suggestion: bag.Suggestion{Resellable: true}}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/detect", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	status, resp := doJSON(t, router, http.MethodPost, "/detect", `{}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid request payload", resp["message"])
}

func TestRecyclersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockRefashionServiceInterface(ctrl)
	router := newTestRouter(NewRefashionHandler(mockService))

	mockService.EXPECT().Recyclers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, q app.RecyclerQuery) []model.Recycler {
			require.NotNil(t, q.Latitude)
			require.Equal(t, 6.9, *q.Latitude)
			require.Equal(t, 10.0, q.RadiusKm)
			return []model.Recycler{{RecyclerID: 7, Name: "Depot"}}
		})

	status, resp := doJSON(t, router, http.MethodGet, "/recyclers?latitude=6.9&longitude=79.8&radius_km=10", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp["data"], 1)
}
