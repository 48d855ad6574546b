package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

type RegisterInput struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"omitempty,oneof=admin staff driver"`
	Passcode     string `json:"passcode" binding:"required,len=6"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female other"`
	MobileNumber string `json:"mobile_number"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PasscodeLoginInput struct {
	Passcode string `json:"passcode" binding:"required,len=6"`
}

// Register creates a staff or driver account. Driver accounts also get
// a driver profile so they can be assigned deliveries.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := config.DB.Where("username = ? OR passcode = ?", input.Username, input.Passcode).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or passcode already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		Password:     input.Password, // hashed in BeforeSave hook
		Role:         input.Role,
		Passcode:     input.Passcode,
		Gender:       input.Gender,
		MobileNumber: input.MobileNumber,
		IsActive:     true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.Role == models.RoleDriver {
			return tx.Create(&models.DeliveryDriver{UserID: user.ID}).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Login authenticates by username and password.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	issueToken(c, &user)
}

// PasscodeLogin authenticates by the 6-digit staff passcode.
func PasscodeLogin(c *gin.Context) {
	var input PasscodeLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("passcode = ?", input.Passcode).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid passcode")
		return
	}

	issueToken(c, &user)
}

func issueToken(c *gin.Context, user *models.User) {
	if !user.IsActive {
		utils.RespondWithError(c, http.StatusBadRequest, "User account is disabled")
		return
	}

	token, err := utils.GenerateToken(fmt.Sprint(user.ID), user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	config.DB.Model(user).Update("last_login", now)

	c.JSON(http.StatusOK, gin.H{
		"access": token,
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"role":          user.Role,
			"mobile_number": user.MobileNumber,
			"gender":        user.Gender,
		},
	})
}

// Logout is stateless; the client discards its token.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
}

// Me returns the authenticated user.
func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"role":          user.Role,
		"mobile_number": user.MobileNumber,
		"gender":        user.Gender,
		"last_login":    user.LastLogin,
	})
}
