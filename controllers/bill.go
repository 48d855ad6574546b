// controllers/bill.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/middlewares"
	"restro-backend/models"
	"restro-backend/services"
	"restro-backend/utils"
)

type CreateBillInput struct {
	OrderID     uint    `json:"order_id" binding:"required"`
	TotalAmount float64 `json:"total_amount"`
	Paid        bool    `json:"paid"`
}

type UpdateBillInput struct {
	TotalAmount *float64 `json:"total_amount"`
	Paid        *bool    `json:"paid"`
}

// CreateBill generates a bill for an order and marks the order billed.
func CreateBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var bill models.Bill
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, input.OrderID).Error; err != nil {
			return err
		}

		total := input.TotalAmount
		if total == 0 {
			total = order.TotalAmount
		}

		bill = models.Bill{
			OrderID:     order.ID,
			UserID:      userID,
			TotalAmount: total,
			Paid:        input.Paid,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("bill_generated", true).Error; err != nil {
			return err
		}

		notification := models.Notification{
			Message: fmt.Sprintf("Bill #%d generated for order #%d, amount $%.2f", bill.ID, order.ID, bill.TotalAmount),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetBills lists bills, optionally filtered by paid flag or by the
// underlying order's status.
func GetBills(c *gin.Context) {
	query := config.DB.Preload("Order.Items.Dish").Order("bills.created_at DESC")
	if paid := c.Query("paid"); paid != "" {
		query = query.Where("paid = ?", paid == "true")
	}
	if status := c.Query("status"); status != "" {
		query = query.Joins("JOIN orders ON orders.id = bills.order_id").
			Where("orders.status = ?", status)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

func GetBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var bill models.Bill
	if err := config.DB.Preload("Order.Items.Dish").First(&bill, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}
	c.JSON(http.StatusOK, bill)
}

func UpdateBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var bill models.Bill
	if err := config.DB.First(&bill, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	if input.TotalAmount != nil {
		bill.TotalAmount = *input.TotalAmount
	}
	if input.Paid != nil {
		bill.Paid = *input.Paid
	}

	if err := config.DB.Save(&bill).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

func DeleteBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Bill{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelOrderByBill cancels the order behind a bill.
func CancelOrderByBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var bill models.Bill
	if err := config.DB.Preload("Order").First(&bill, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}
	if bill.Order.Status == models.OrderStatusCancelled {
		respondServiceError(c, services.ErrOrderAlreadyCancelled)
		return
	}

	if _, err := services.NewOrderService(config.DB).CancelOrder(bill.OrderID); err != nil {
		middlewares.RecordOrderOperation("cancel", false)
		respondServiceError(c, err)
		return
	}

	middlewares.RecordOrderOperation("cancel", true)
	c.JSON(http.StatusOK, gin.H{"detail": "Order has been cancelled."})
}
