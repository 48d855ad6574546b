// controllers/mess.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/services"
	"restro-backend/utils"
)

type MessTypeInput struct {
	Name string `json:"name" binding:"required"`
}

type MenuInput struct {
	Name       string `json:"name" binding:"required"`
	DayOfWeek  string `json:"day_of_week"`
	IsCustom   bool   `json:"is_custom"`
	MessTypeID *uint  `json:"mess_type_id"`
	CreatedBy  string `json:"created_by"`
}

type MenuItemInput struct {
	MealType string `json:"meal_type" binding:"required,oneof=breakfast lunch dinner"`
	MenuID   uint   `json:"menu" binding:"required"`
	DishID   uint   `json:"dish" binding:"required"`
}

// MessType handlers

func GetMessTypes(c *gin.Context) {
	var messTypes []models.MessType
	if err := config.DB.Order("name").Find(&messTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve mess types")
		return
	}
	c.JSON(http.StatusOK, messTypes)
}

func CreateMessType(c *gin.Context) {
	var input MessTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	messType := models.MessType{Name: input.Name}
	if err := config.DB.Create(&messType).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to create mess type, name may already exist")
		return
	}
	c.JSON(http.StatusCreated, messType)
}

func DeleteMessType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.MessType{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete mess type")
		return
	}
	c.Status(http.StatusNoContent)
}

// Menu handlers

func GetMenus(c *gin.Context) {
	query := config.DB.Preload("MenuItems.Dish")
	if messTypeID := c.Query("mess_type"); messTypeID != "" {
		query = query.Where("mess_type_id = ?", messTypeID)
	}
	if custom := c.Query("is_custom"); custom != "" {
		query = query.Where("is_custom = ?", custom == "true")
	}

	var menus []models.Menu
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve menus")
		return
	}
	c.JSON(http.StatusOK, menus)
}

func CreateMenu(c *gin.Context) {
	var input MenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	menu := models.Menu{
		Name:       input.Name,
		DayOfWeek:  input.DayOfWeek,
		IsCustom:   input.IsCustom,
		MessTypeID: input.MessTypeID,
		CreatedBy:  input.CreatedBy,
	}
	if menu.CreatedBy == "" {
		menu.CreatedBy = "admin"
	}

	if err := config.DB.Create(&menu).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create menu")
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func DeleteMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete menu")
		return
	}
	c.Status(http.StatusNoContent)
}

// MenuItem handlers

func CreateMenuItem(c *gin.Context) {
	var input MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.MenuItem{
		MealType: input.MealType,
		MenuID:   input.MenuID,
		DishID:   input.DishID,
	}
	if err := services.NewMessService(config.DB).AddMenuItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := services.NewMessService(config.DB).RemoveMenuItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Mess handlers

func GetMesses(c *gin.Context) {
	query := config.DB.Preload("MessType").Preload("Menus")
	if status := c.Query("status"); status == "active" {
		query = query.Where("end_date >= ?", time.Now())
	} else if status == "expired" {
		query = query.Where("end_date < ?", time.Now())
	}

	var messes []models.Mess
	if err := query.Order("created_at DESC").Find(&messes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messes")
		return
	}
	c.JSON(http.StatusOK, messes)
}

func GetMess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var mess models.Mess
	if err := config.DB.Preload("MessType").Preload("Menus.MenuItems.Dish").
		First(&mess, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Mess not found")
		return
	}
	c.JSON(http.StatusOK, mess)
}

func CreateMess(c *gin.Context) {
	var input services.CreateMessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.MobileNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	mess, err := services.NewMessService(config.DB).CreateMess(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mess)
}

func UpdateMess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateMessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.MobileNumber != nil && !utils.ValidatePhone(*input.MobileNumber) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	mess, err := services.NewMessService(config.DB).UpdateMess(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mess)
}

func DeleteMess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Mess{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete mess")
		return
	}
	c.Status(http.StatusNoContent)
}

// MessReport summarises subscription balances. Supports filtering by
// start date window, payment method and mess type.
func MessReport(c *gin.Context) {
	base := config.DB.Model(&models.Mess{})
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("start_date >= ?", parsed)
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("start_date <= ?", parsed)
	}
	if method := c.Query("payment_method"); method != "" {
		base = base.Where("payment_method = ?", method)
	}
	if messTypeID := c.Query("mess_type"); messTypeID != "" {
		base = base.Where("mess_type_id = ?", messTypeID)
	}

	var report struct {
		TotalMesses   int64         `json:"totalMesses"`
		ActiveMesses  int64         `json:"activeMesses"`
		TotalAmount   float64       `json:"totalAmount"`
		PaidAmount    float64       `json:"paidAmount"`
		PendingAmount float64       `json:"pendingAmount"`
		CashAmount    float64       `json:"cashAmount"`
		BankAmount    float64       `json:"bankAmount"`
		Messes        []models.Mess `json:"messes"`
	}

	if err := base.Session(&gorm.Session{}).Count(&report.TotalMesses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build mess report")
		return
	}
	if err := base.Session(&gorm.Session{}).
		Where("end_date >= ?", time.Now()).
		Count(&report.ActiveMesses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build mess report")
		return
	}

	totals := struct {
		TotalAmount   float64
		PaidAmount    float64
		PendingAmount float64
		CashAmount    float64
		BankAmount    float64
	}{}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0) as total_amount, COALESCE(SUM(paid_amount), 0) as paid_amount, COALESCE(SUM(pending_amount), 0) as pending_amount, COALESCE(SUM(cash_amount), 0) as cash_amount, COALESCE(SUM(bank_amount), 0) as bank_amount").
		Scan(&totals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build mess report")
		return
	}
	report.TotalAmount = totals.TotalAmount
	report.PaidAmount = totals.PaidAmount
	report.PendingAmount = totals.PendingAmount
	report.CashAmount = totals.CashAmount
	report.BankAmount = totals.BankAmount

	if err := base.Session(&gorm.Session{}).
		Preload("MessType").
		Order("created_at DESC").
		Find(&report.Messes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build mess report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// MessTransaction handlers

func GetMessTransactions(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if messID := c.Query("mess"); messID != "" {
		query = query.Where("mess_id = ?", messID)
	}

	var transactions []models.MessTransaction
	if err := query.Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve mess transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func CreateMessTransaction(c *gin.Context) {
	var input services.MessTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	record, err := services.NewMessService(config.DB).AddTransaction(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
