package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workzen-dev/workzen/db"
	"github.com/workzen-dev/workzen/internal/auth"
	"github.com/workzen-dev/workzen/internal/models"
	"github.com/workzen-dev/workzen/internal/types"
	"github.com/workzen-dev/workzen/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", req.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("failed to check existing user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		zap.L().Error("failed to generate token", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": types.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		zap.L().Error("failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		zap.L().Error("failed to generate token", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": types.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// CurrentUser returns the authenticated principal's profile.
func CurrentUser(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, principal.ID).Error; err != nil {
		zap.L().Error("failed to fetch user", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
