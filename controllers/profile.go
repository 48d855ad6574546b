// controllers/profile.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

type LogoInfoInput struct {
	CompanyName  string `json:"company_name" binding:"required"`
	PhoneNumber  string `json:"phone_number"`
	Location     string `json:"location"`
	OfficeNumber string `json:"office_number"`
	MainLogo     string `json:"main_logo"`
	PrintLogo    string `json:"print_logo"`
}

// GetLogoInfo returns the restaurant profile shown on invoices. There
// is at most one row.
func GetLogoInfo(c *gin.Context) {
	var info models.LogoInfo
	if err := config.DB.First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateLogoInfo creates or replaces the single profile row.
func UpdateLogoInfo(c *gin.Context) {
	var input LogoInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var info models.LogoInfo
	err := config.DB.First(&info).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}

	info.CompanyName = input.CompanyName
	info.PhoneNumber = input.PhoneNumber
	info.Location = input.Location
	info.OfficeNumber = input.OfficeNumber
	info.MainLogo = input.MainLogo
	info.PrintLogo = input.PrintLogo

	if err := config.DB.Save(&info).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, info)
}
