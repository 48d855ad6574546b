// controllers/notification.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

func GetNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := config.DB.Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func GetUnreadNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := config.DB.Where("is_read = ?", false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func MarkNotificationAsRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var notification models.Notification
	if err := config.DB.First(&notification, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		return
	}

	if err := config.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, notification)
}

func DeleteNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	c.Status(http.StatusNoContent)
}
