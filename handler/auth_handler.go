package handler

import (
	"errors"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterHandler(c *gin.Context, users *repository.UserRepo) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := users.Create(c, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "Email already registered")
			return
		}
		utils.InternalError(c, "Failed to create user")
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, dto.RegisterResponse{ID: user.ID, Email: user.Email})
}

func LoginHandler(c *gin.Context, users *repository.UserRepo) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	// One rejection message for bad email and bad password alike.
	user, err := users.FindByEmail(c, req.Email)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	ok, err := services.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := services.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.AuthUser{ID: user.ID, Email: user.Email},
	})
}
