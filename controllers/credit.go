// controllers/credit.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/services"
	"restro-backend/utils"
)

type CreditUserInput struct {
	Username     string  `json:"username" binding:"required"`
	MobileNumber string  `json:"mobile_number" binding:"required"`
	BillDate     string  `json:"bill_date"`
	DueDate      string  `json:"due_date"`
	TotalDue     float64 `json:"total_due"`
	LimitAmount  float64 `json:"limit_amount"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateCreditUserInput carries pointer fields so a PUT only touches
// what the client sent. TotalDue is deliberately absent: the balance
// moves through credit orders and payments only.
type UpdateCreditUserInput struct {
	Username     *string  `json:"username"`
	MobileNumber *string  `json:"mobile_number"`
	BillDate     *string  `json:"bill_date"`
	DueDate      *string  `json:"due_date"`
	LimitAmount  *float64 `json:"limit_amount"`
	IsActive     *bool    `json:"is_active"`
}

type MakePaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreditUser handlers

func GetCreditUsers(c *gin.Context) {
	var creditUsers []models.CreditUser
	if err := config.DB.Order("username").Find(&creditUsers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve credit users")
		return
	}
	c.JSON(http.StatusOK, creditUsers)
}

// GetActiveCreditUsers returns the accounts that can take new credit
// orders.
func GetActiveCreditUsers(c *gin.Context) {
	var creditUsers []models.CreditUser
	if err := config.DB.Where("is_active = ?", true).
		Order("username").
		Find(&creditUsers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve credit users")
		return
	}
	c.JSON(http.StatusOK, creditUsers)
}

func GetCreditUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var creditUser models.CreditUser
	if err := config.DB.Preload("CreditOrders.Order").First(&creditUser, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Credit user not found")
		return
	}
	c.JSON(http.StatusOK, creditUser)
}

func CreateCreditUser(c *gin.Context) {
	var input CreditUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.MobileNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	creditUser, ok := creditUserFromInput(c, input)
	if !ok {
		return
	}

	if err := config.DB.Create(creditUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to create credit user, mobile number may already exist")
		return
	}
	c.JSON(http.StatusCreated, creditUser)
}

func UpdateCreditUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var existing models.CreditUser
	if err := config.DB.First(&existing, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Credit user not found")
		return
	}

	var input UpdateCreditUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Username != nil {
		existing.Username = *input.Username
	}
	if input.MobileNumber != nil {
		if !utils.ValidatePhone(*input.MobileNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
			return
		}
		existing.MobileNumber = *input.MobileNumber
	}
	if input.BillDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.BillDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill_date, expected YYYY-MM-DD")
			return
		}
		existing.BillDate = parsed
	}
	if input.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
			return
		}
		existing.DueDate = parsed
	}
	if input.LimitAmount != nil {
		existing.LimitAmount = *input.LimitAmount
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update credit user")
		return
	}
	c.JSON(http.StatusOK, existing)
}

func DeleteCreditUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.CreditUser{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete credit user")
		return
	}
	c.Status(http.StatusNoContent)
}

// MakeCreditPayment settles part of an account's due balance.
func MakeCreditPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input MakePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	creditUser, err := services.NewCreditService(config.DB).MakePayment(id, input.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, creditUser)
}

// CreditOrder handlers

func GetCreditOrders(c *gin.Context) {
	query := config.DB.Preload("Order.Items.Dish").Order("created_at DESC")
	if creditUserID := c.Query("credit_user"); creditUserID != "" {
		query = query.Where("credit_user_id = ?", creditUserID)
	}

	var creditOrders []models.CreditOrder
	if err := query.Find(&creditOrders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve credit orders")
		return
	}
	c.JSON(http.StatusOK, creditOrders)
}

// CreditTransaction handlers

func GetCreditTransactions(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if creditUserID := c.Query("credit_user"); creditUserID != "" {
		query = query.Where("credit_user_id = ?", creditUserID)
	}

	var transactions []models.CreditTransaction
	if err := query.Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve credit transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func CreateCreditTransaction(c *gin.Context) {
	var input services.CreditTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	record, err := services.NewCreditService(config.DB).AddTransaction(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func creditUserFromInput(c *gin.Context, input CreditUserInput) (*models.CreditUser, bool) {
	creditUser := &models.CreditUser{
		Username:     input.Username,
		MobileNumber: input.MobileNumber,
		TotalDue:     input.TotalDue,
		LimitAmount:  input.LimitAmount,
		IsActive:     true,
	}
	if input.IsActive != nil {
		creditUser.IsActive = *input.IsActive
	}

	if input.BillDate != "" {
		parsed, err := time.Parse("2006-01-02", input.BillDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill_date, expected YYYY-MM-DD")
			return nil, false
		}
		creditUser.BillDate = parsed
	}
	if input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
			return nil, false
		}
		creditUser.DueDate = parsed
	}
	return creditUser, true
}
