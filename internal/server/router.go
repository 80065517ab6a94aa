package server

import (
	"net/http"

	"refashion/internal/app"
	"refashion/services/refashion/handler"
	"refashion/utils"

	"github.com/gin-gonic/gin"
)

var _ handler.RefashionServiceInterface = (*app.Session)(nil)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.RefashionServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	h := handler.NewRefashionHandler(service)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"ok": true}, "healthy")
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.LoginHandler)
		authGroup.POST("/signup", h.SignupHandler)
		authGroup.POST("/guest", h.GuestHandler)
		authGroup.POST("/logout", h.LogoutHandler)
		authGroup.GET("/me", h.MeHandler)
		authGroup.POST("/refresh", h.RefreshHandler)
		authGroup.PUT("/profile", h.UpdateProfileHandler)
	}

	bags := router.Group("/bags")
	{
		bags.GET("", h.GetBagsHandler)
		bags.POST("/move", h.MoveItemHandler)
		bags.POST("/:category/items", h.AddItemHandler)
		bags.DELETE("/:category/items/:item_id", h.RemoveItemHandler)
		bags.DELETE("/:category", h.ClearBagHandler)
	}

	rewards := router.Group("/rewards")
	{
		rewards.GET("", h.GetRewardsHandler)
		rewards.POST("/points", h.AddPointsHandler)
		rewards.POST("/reset", h.ResetPointsHandler)
		rewards.GET("/progress", h.ProgressHandler)
	}

	listings := router.Group("/listings")
	{
		listings.GET("", h.ListListingsHandler)
		listings.POST("", h.CreateListingHandler)
		listings.GET("/:listing_id", h.GetListingHandler)
		listings.POST("/:listing_id/purchase", h.PurchaseHandler)
	}

	router.POST("/detect", h.DetectHandler)
	router.GET("/recyclers", h.RecyclersHandler)

	return router
}
