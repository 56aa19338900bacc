package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"buybuddysave/database"
	"buybuddysave/middleware"
	"buybuddysave/models"
	"buybuddysave/utils"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string              `json:"token"`
	User    models.UserResponse `json:"user"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := models.User{
		ID:        utils.GenerateUUID(),
		Username:  req.Username,
		Nickname:  nickname,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := database.DB.CreateUser(user); err != nil {
		utils.BadRequest(c, "username already exists")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{
		Token: token,
		User:  *user.ToResponse(),
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, ok := database.DB.UserByUsername(req.Username)
	if !ok {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{
		Token:   token,
		User:    *user.ToResponse(),
		Profile: database.DB.ProfileByUserID(user.ID),
	})
}

func Logout(c *gin.Context) {
	utils.Success(c, nil)
}

func GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, ok := database.DB.UserByID(userID)
	if !ok {
		utils.NotFound(c, "user not found")
		return
	}

	utils.Success(c, gin.H{
		"user":    user.ToResponse(),
		"profile": database.DB.ProfileByUserID(userID),
	})
}

type ProfileUpdateRequest struct {
	Location *models.Location `json:"location"`
}

func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	profile := models.UserProfile{UserID: userID, Location: req.Location}
	database.DB.SetProfile(profile)

	utils.Success(c, profile)
}
