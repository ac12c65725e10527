package router

import (
	"talentradar/internal/handlers"
	"talentradar/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Write endpoints share one per-IP limiter: 1 request per 2 seconds, burst 3.
const (
	writeRPS   = 0.5
	writeBurst = 3
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	playerHandler := handlers.NewPlayerHandler()
	threadHandler := handlers.NewThreadHandler()
	replyHandler := handlers.NewReplyHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	ratingHandler := handlers.NewRatingHandler()
	pollHandler := handlers.NewPollHandler()
	notificationHandler := handlers.NewNotificationHandler()
	analyticsHandler := handlers.NewAnalyticsHandler()
	moderationHandler := handlers.NewModerationHandler()
	userHandler := handlers.NewUserHandler()

	limiter := middleware.NewIPRateLimiter(rate.Limit(writeRPS), writeBurst)
	throttled := middleware.RateLimit(limiter)

	api := r.Group("/api")

	// Auth
	api.POST("/auth/signup", throttled, authHandler.Signup)
	api.POST("/auth/login", throttled, authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	// Public reads
	api.GET("/players", playerHandler.List)
	api.GET("/players/trending", playerHandler.Trending)
	api.GET("/players/:slug", playerHandler.Detail)
	api.GET("/players/:slug/comments", commentHandler.List)
	api.GET("/players/:slug/threads", threadHandler.ListByPlayer)
	api.GET("/threads", threadHandler.ListTop)
	api.GET("/threads/new", threadHandler.ListNew)
	api.GET("/threads/:tid", threadHandler.Detail)
	api.GET("/polls", pollHandler.List)
	api.GET("/polls/:pid", pollHandler.Detail)
	api.GET("/users/:id", userHandler.Profile)
	api.GET("/analytics/players/top-viewed", analyticsHandler.TopViewed)
	api.GET("/analytics/players/top-rated", analyticsHandler.TopRated)
	api.GET("/analytics/players/:slug/views", analyticsHandler.ViewSeries)

	// Anonymous polls accept votes without a session; the handler enforces
	// authentication for identified polls.
	api.POST("/polls/:pid/vote", throttled, pollHandler.Vote)

	// Authenticated
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/threads", throttled, threadHandler.Create)
		authorized.PUT("/threads/:tid", threadHandler.Update)
		authorized.DELETE("/threads/:tid", threadHandler.Delete)
		authorized.POST("/threads/:tid/replies", throttled, replyHandler.Create)
		authorized.DELETE("/replies/:id", replyHandler.Delete)

		authorized.POST("/players/:slug/comments", throttled, commentHandler.Create)
		authorized.DELETE("/comments/:cid", commentHandler.Delete)

		authorized.POST("/polls", throttled, pollHandler.Create)

		authorized.POST("/votes/comments/:id", voteHandler.VoteComment)
		authorized.POST("/votes/replies/:id", voteHandler.VoteReply)

		authorized.PUT("/players/:slug/rating", ratingHandler.Rate)
		authorized.DELETE("/players/:slug/rating", ratingHandler.Remove)

		authorized.POST("/players/:slug/follow", playerHandler.Follow)
		authorized.DELETE("/players/:slug/follow", playerHandler.Unfollow)
		authorized.GET("/me/following", userHandler.Following)
		authorized.GET("/me/reputation", userHandler.ReputationLogs)
		authorized.PUT("/me/settings", userHandler.UpdateSettings)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.POST("/reports", throttled, moderationHandler.Report)
		authorized.POST("/polls/:pid/close", moderationHandler.ClosePoll)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/players", playerHandler.Create)
		admin.PUT("/players/:slug", playerHandler.Update)
		admin.GET("/reports", moderationHandler.ListReports)
		admin.POST("/reports/:id/resolve", moderationHandler.ResolveReport)
		admin.POST("/threads/:tid/lock", moderationHandler.LockThread)
		admin.POST("/threads/:tid/unlock", moderationHandler.UnlockThread)
	}
}
