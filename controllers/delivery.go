// controllers/delivery.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/services"
	"restro-backend/utils"
)

type DeliveryStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// DeliveryDriver handlers

func GetDeliveryDrivers(c *gin.Context) {
	query := config.DB.Preload("User")
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if available := c.Query("is_available"); available != "" {
		query = query.Where("is_available = ?", available == "true")
	}

	var drivers []models.DeliveryDriver
	if err := query.Find(&drivers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve delivery drivers")
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func GetDeliveryDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var driver models.DeliveryDriver
	if err := config.DB.Preload("User").Preload("Orders").First(&driver, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Delivery driver not found")
		return
	}
	c.JSON(http.StatusOK, driver)
}

// ToggleDriverAvailable flips a driver's availability. Going available
// is refused while the driver still has active orders.
func ToggleDriverAvailable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := services.NewDispatchService(config.DB).ToggleAvailable(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// ToggleDriverActive flips whether a driver is on the roster at all.
func ToggleDriverActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := services.NewDispatchService(config.DB).ToggleActive(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeliveryOrder handlers

func GetDeliveryOrders(c *gin.Context) {
	query := config.DB.Preload("Driver.User").Preload("Order.Items.Dish").
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if driverID := c.Query("driver"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}

	var deliveryOrders []models.DeliveryOrder
	if err := query.Find(&deliveryOrders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve delivery orders")
		return
	}
	c.JSON(http.StatusOK, deliveryOrders)
}

func GetDeliveryOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var deliveryOrder models.DeliveryOrder
	if err := config.DB.Preload("Driver.User").Preload("Order.Items.Dish").
		First(&deliveryOrder, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Delivery order not found")
		return
	}
	c.JSON(http.StatusOK, deliveryOrder)
}

// UpdateDeliveryStatus moves a delivery order through its lifecycle and
// keeps the assigned driver's availability in step.
func UpdateDeliveryStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input DeliveryStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	deliveryOrder, err := services.NewDispatchService(config.DB).UpdateStatus(id, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveryOrder)
}
