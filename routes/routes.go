package routes

import (
	"gigspace/auth"
	"gigspace/bids"
	"gigspace/gigs"
	"gigspace/hire"
	"gigspace/middleware"
	"gigspace/notify"
	"gigspace/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddGigRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/gigs", gigs.GetGigs)
	router.POST("/api/gigs/gig", rl.Limit(middleware.Authenticate(gigs.CreateGig)))
	router.GET("/api/gigs/gig/:id", gigs.GetGigByID)
	router.GET("/api/gigs/mine", middleware.Authenticate(gigs.GetMyGigs))
}

func AddBidRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, coord *hire.Coordinator) {
	router.POST("/api/bids", rl.Limit(middleware.Authenticate(bids.SubmitBid)))
	router.GET("/api/bids/gig/:gigId", middleware.Authenticate(bids.GetBidsForGig))
	router.GET("/api/bids/mine", middleware.Authenticate(bids.GetMyBids))
	router.PATCH("/api/bids/bid/:bidId/hire", rl.Limit(middleware.Authenticate(bids.HireBid(coord))))
}

func AddNotificationRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/ws/notifications", notify.WebSocketHandler(hub))
}
