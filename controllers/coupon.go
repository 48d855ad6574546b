// controllers/coupon.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

type CouponInput struct {
	Code               string   `json:"code" binding:"required"`
	DiscountAmount     float64  `json:"discount_amount"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	StartDate          string   `json:"start_date" binding:"required"`
	EndDate            string   `json:"end_date" binding:"required"`
	IsActive           *bool    `json:"is_active"`
	UsageLimit         *uint    `json:"usage_limit"`
	MinPurchaseAmount  *float64 `json:"min_purchase_amount"`
	Description        string   `json:"description"`
}

type ApplyCouponInput struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve coupons")
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func CreateCoupon(c *gin.Context) {
	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	coupon, ok := couponFromInput(c, input)
	if !ok {
		return
	}

	if err := config.DB.Create(coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to create coupon, code may already exist")
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var existing models.Coupon
	if err := config.DB.First(&existing, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	var input CouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	coupon, valid := couponFromInput(c, input)
	if !valid {
		return
	}
	coupon.ID = existing.ID
	coupon.UsageCount = existing.UsageCount
	coupon.CreatedAt = existing.CreatedAt

	if err := config.DB.Save(coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update coupon")
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Coupon{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyCoupon validates a coupon code and returns the discounted amount.
func ApplyCoupon(c *gin.Context) {
	var input ApplyCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var coupon models.Coupon
	if err := config.DB.Where("code = ?", input.Code).First(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	if !coupon.IsValid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Coupon is not valid")
		return
	}
	if coupon.MinPurchaseAmount != nil && input.Amount < *coupon.MinPurchaseAmount {
		utils.RespondWithError(c, http.StatusBadRequest, "Order amount is below the coupon minimum")
		return
	}

	discounted := coupon.ApplyDiscount(input.Amount)
	if discounted < 0 {
		discounted = 0
	}

	if err := config.DB.Model(&coupon).
		Update("usage_count", coupon.UsageCount+1).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record coupon usage")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":              coupon.Code,
		"original_amount":   input.Amount,
		"discounted_amount": discounted,
	})
}

func couponFromInput(c *gin.Context, input CouponInput) (*models.Coupon, bool) {
	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return nil, false
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return nil, false
	}
	if end.Before(start) {
		utils.RespondWithError(c, http.StatusBadRequest, "end_date must not be before start_date")
		return nil, false
	}

	coupon := &models.Coupon{
		Code:               input.Code,
		DiscountAmount:     input.DiscountAmount,
		DiscountPercentage: input.DiscountPercentage,
		StartDate:          start,
		EndDate:            utils.EndOfDay(end),
		IsActive:           true,
		UsageLimit:         input.UsageLimit,
		MinPurchaseAmount:  input.MinPurchaseAmount,
		Description:        input.Description,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	return coupon, true
}
