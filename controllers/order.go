// controllers/order.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/middlewares"
	"restro-backend/models"
	"restro-backend/services"
	"restro-backend/utils"
)

// CreateOrder creates an order with its items and computes the total.
func CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := services.NewOrderService(config.DB).CreateOrder(userID, input)
	if err != nil {
		middlewares.RecordOrderOperation("create", false)
		respondServiceError(c, err)
		return
	}

	middlewares.RecordOrderOperation("create", true)
	c.JSON(http.StatusCreated, order)
}

// GetOrders lists orders, optionally filtered by order type.
func GetOrders(c *gin.Context) {
	query := config.DB.Preload("Items.Dish").Order("created_at DESC")
	if orderType := c.Query("order_type"); orderType != "" {
		query = query.Where("order_type = ?", orderType)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var order models.Order
	if err := config.DB.Preload("Items.Dish").First(&order, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder appends new items and re-computes the total.
func UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := services.NewOrderService(config.DB).UpdateOrder(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelOrder cancels an order unless it has already been delivered.
func CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := services.NewOrderService(config.DB).CancelOrder(id); err != nil {
		middlewares.RecordOrderOperation("cancel", false)
		respondServiceError(c, err)
		return
	}

	middlewares.RecordOrderOperation("cancel", true)
	c.JSON(http.StatusOK, gin.H{"detail": "Order has been cancelled."})
}

// UpdateOrderStatus applies a status transition; setting "delivered"
// locks in the payment allocation.
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.OrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := services.NewOrderService(config.DB).UpdateStatus(id, input); err != nil {
		middlewares.RecordOrderOperation("status_update", false)
		respondServiceError(c, err)
		return
	}

	middlewares.RecordOrderOperation("status_update", true)
	c.JSON(http.StatusOK, gin.H{"detail": "Order updated successfully."})
}

// ChangeOrderType switches an order's type, wiring up the delivery
// order when the order becomes a delivery.
func ChangeOrderType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.OrderTypeChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, deliveryOrder, err := services.NewOrderService(config.DB).ChangeOrderType(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{"order": order}
	if deliveryOrder != nil {
		response["delivery_order"] = deliveryOrder
	}
	c.JSON(http.StatusOK, response)
}

// UserOrderHistory lists a customer's past orders by phone number.
func UserOrderHistory(c *gin.Context) {
	phone := c.Query("customer_phone_number")
	if phone == "" {
		c.JSON(http.StatusOK, []models.Order{})
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Items.Dish").
		Where("customer_phone_number = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}
