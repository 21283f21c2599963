package server

import (
	"net/http"

	account "auction-site/internal/accountService"
	bidding "auction-site/internal/biddingService"
	listing "auction-site/internal/listingService"
	session "auction-site/internal/sessionService"
	"auction-site/internal/templates"
	authhandler "auction-site/services/auth/handler"
	listinghandler "auction-site/services/listing/handler"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(accounts *account.AccountService, sessions *session.Manager, listings *listing.ListingService, bids *bidding.BiddingService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.SetHTMLTemplate(templates.Load())

	authHandler := authhandler.NewAuthHandler(accounts, sessions)
	listingHandler := listinghandler.NewListingHandler(listings, bids)

	router.GET("/health", HealthHandler)

	router.GET("/login", authHandler.ShowLoginHandler)
	router.POST("/login", authHandler.LoginHandler)
	router.GET("/logout", authHandler.LogoutHandler)
	router.POST("/logout", authHandler.LogoutHandler)
	router.GET("/register", authHandler.ShowRegisterHandler)
	router.POST("/register", authHandler.RegisterHandler)

	protected := router.Group("/", AuthRequiredMiddleware(sessions))
	{
		protected.GET("", listingHandler.FeedHandler)
		protected.GET("listings/new", listingHandler.ShowNewListingHandler)
		protected.POST("listings/new", listingHandler.CreateListingHandler)
		protected.GET("listings/:listing_id", listingHandler.ViewListingHandler)
		protected.POST("listings/:listing_id/bids", listingHandler.PlaceBidHandler)
	}

	return router
}

// HealthHandler handles GET /health
func HealthHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, gin.H{"status": "healthy"}, "auction site is up")
}
