package handlers

import (
	"github.com/gin-gonic/gin"
	"buybuddysave/middleware"
	"buybuddysave/websocket"
)

// NewRouter mounts the REST surface the client SDK consumes. Paths keep
// their trailing slashes to match the production API.
func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register/", Register)
		auth.POST("/login/", Login)
		auth.POST("/logout/", middleware.AuthMiddleware(), Logout)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me/", GetCurrentUser)
		users.PUT("/me/", UpdateProfile)
	}

	buddyRequests := r.Group("/api/buddy_requests")
	buddyRequests.Use(middleware.AuthMiddleware())
	{
		buddyRequests.GET("/", GetBuddyRequests)
		buddyRequests.POST("/", CreateBuddyRequest)
		buddyRequests.PUT("/:id/", UpdateBuddyRequest)
		buddyRequests.GET("/buddy/", GetBuddies)
		buddyRequests.POST("/buddy/", CreateBuddy)
		buddyRequests.GET("/review/", GetReviewBuddies)
		buddyRequests.GET("/notification/", GetNotifications)
	}

	chat := r.Group("/api/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/", GetChatMessages)
	}

	stores := r.Group("/api/stores")
	stores.Use(middleware.AuthMiddleware())
	{
		stores.GET("/", GetStores)
		stores.GET("/deal/", GetDeals)
		stores.GET("/shopping_list/", GetShoppingLists)
		stores.POST("/shopping_list/", CreateShoppingList)
		stores.PUT("/shopping_list/:id/", UpdateShoppingList)
	}

	r.GET("/ws", websocket.HandleWebSocket)

	return r
}
