package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"buybuddysave/database"
	"buybuddysave/middleware"
	"buybuddysave/models"
	"buybuddysave/utils"
)

func GetBuddyRequests(c *gin.Context) {
	requests := database.DB.Requests()
	if requests == nil {
		requests = []models.BuddyRequest{}
	}
	utils.Success(c, requests)
}

func CreateBuddyRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.BuddyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.RequesterID == "" {
		req.RequesterID = userID
	}
	req.ID = utils.GenerateUUID()
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()

	database.DB.AddRequest(req)
	utils.Success(c, req)
}

type RequestUpdate struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined"`
}

func UpdateBuddyRequest(c *gin.Context) {
	id := c.Param("id")

	var update RequestUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	request, ok := database.DB.UpdateRequestStatus(id, update.Status)
	if !ok {
		utils.NotFound(c, "buddy request not found")
		return
	}

	utils.Success(c, request)
}

func GetBuddies(c *gin.Context) {
	buddies := database.DB.Buddies()
	if buddies == nil {
		buddies = []models.Buddy{}
	}
	utils.Success(c, buddies)
}

func CreateBuddy(c *gin.Context) {
	var buddy models.Buddy
	if err := c.ShouldBindJSON(&buddy); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	buddy.ID = utils.GenerateUUID()
	database.DB.AddBuddy(buddy)
	utils.Success(c, buddy)
}

func GetReviewBuddies(c *gin.Context) {
	buddies := database.DB.ReviewBuddies()
	if buddies == nil {
		buddies = []models.Buddy{}
	}
	utils.Success(c, buddies)
}

func GetNotifications(c *gin.Context) {
	userID := middleware.GetUserID(c)

	notifications := database.DB.Notifications(userID)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	utils.Success(c, notifications)
}

func GetChatMessages(c *gin.Context) {
	messages := database.DB.Messages()
	if messages == nil {
		messages = []models.Message{}
	}
	utils.Success(c, messages)
}
