// controllers/ledger.go
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

type NatureGroupInput struct {
	Name string `json:"name" binding:"required"`
}

type MainGroupInput struct {
	Name          string `json:"name" binding:"required"`
	NatureGroupID uint   `json:"nature_group" binding:"required"`
}

type LedgerInput struct {
	Name           string  `json:"name" binding:"required"`
	MobileNo       string  `json:"mobile_no"`
	OpeningBalance float64 `json:"opening_balance"`
	Date           string  `json:"date"`
	GroupID        uint    `json:"group" binding:"required"`
	DebitCredit    string  `json:"debit_credit" binding:"omitempty,oneof=DEBIT CREDIT"`
}

type IncomeStatementInput struct {
	LedgerID   uint    `json:"ledger" binding:"required"`
	IncomeType string  `json:"income_type" binding:"required,oneof='Sales' 'Indirect Income'"`
	Amount     float64 `json:"amount"`
}

type BalanceSheetInput struct {
	LedgerID    uint    `json:"ledger" binding:"required"`
	BalanceType string  `json:"balance_type" binding:"required,oneof=Asset Liability"`
	Amount      float64 `json:"amount"`
}

// NatureGroup handlers

func GetNatureGroups(c *gin.Context) {
	var groups []models.NatureGroup
	if err := config.DB.Preload("MainGroups").Order("name").Find(&groups).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve nature groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func CreateNatureGroup(c *gin.Context) {
	var input NatureGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	group := models.NatureGroup{Name: input.Name}
	if err := config.DB.Create(&group).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to create nature group, name may already exist")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func DeleteNatureGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.NatureGroup{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete nature group")
		return
	}
	c.Status(http.StatusNoContent)
}

// MainGroup handlers

func GetMainGroups(c *gin.Context) {
	query := config.DB.Preload("Ledgers").Order("name")
	if natureGroupID := c.Query("nature_group"); natureGroupID != "" {
		query = query.Where("nature_group_id = ?", natureGroupID)
	}

	var groups []models.MainGroup
	if err := query.Find(&groups).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve main groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func CreateMainGroup(c *gin.Context) {
	var input MainGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	group := models.MainGroup{Name: input.Name, NatureGroupID: input.NatureGroupID}
	if err := config.DB.Create(&group).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to create main group, name may already exist")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func DeleteMainGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.MainGroup{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete main group")
		return
	}
	c.Status(http.StatusNoContent)
}

// Ledger handlers

func GetLedgers(c *gin.Context) {
	query := config.DB.Preload("Group").Order("name")
	if groupID := c.Query("group"); groupID != "" {
		query = query.Where("group_id = ?", groupID)
	}

	var ledgers []models.Ledger
	if err := query.Find(&ledgers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve ledgers")
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

func CreateLedger(c *gin.Context) {
	var input LedgerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ledger := models.Ledger{
		Name:           input.Name,
		MobileNo:       input.MobileNo,
		OpeningBalance: input.OpeningBalance,
		GroupID:        input.GroupID,
		DebitCredit:    input.DebitCredit,
	}
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		ledger.Date = parsed
	}

	if err := config.DB.Create(&ledger).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create ledger")
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

func DeleteLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Ledger{}, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ledger")
		return
	}
	c.Status(http.StatusNoContent)
}

// LedgerTransaction handlers

func GetLedgerTransactions(c *gin.Context) {
	query := config.DB.Preload("Ledger").Preload("Particulars").
		Order("voucher_no DESC, created_at DESC")
	if ledgerID := c.Query("ledger"); ledgerID != "" {
		query = query.Where("ledger_id = ?", ledgerID)
	}
	if voucherNo := c.Query("voucher_no"); voucherNo != "" {
		query = query.Where("voucher_no = ?", voucherNo)
	}

	var transactions []models.LedgerTransaction
	if err := query.Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve ledger transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateLedgerTransaction posts both legs of a voucher atomically.
func CreateLedgerTransaction(c *gin.Context) {
	var input services.PairedEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	first, second, err := services.NewLedgerService(config.DB).PostPaired(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction1": first,
		"transaction2": second,
	})
}

// LedgerReport returns a ledger's postings with running debit/credit
// totals.
func LedgerReport(c *gin.Context) {
	ledgerID := c.Query("ledger")
	if ledgerID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "ledger query parameter is required")
		return
	}

	var ledger models.Ledger
	if err := config.DB.First(&ledger, ledgerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Ledger not found")
		return
	}

	var transactions []models.LedgerTransaction
	if err := config.DB.Preload("Particulars").
		Where("ledger_id = ?", ledger.ID).
		Order("date, voucher_no").
		Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve ledger transactions")
		return
	}

	var totalDebit, totalCredit float64
	for _, txn := range transactions {
		totalDebit += txn.DebitAmount
		totalCredit += txn.CreditAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"ledger":         ledger,
		"transactions":   transactions,
		"total_debit":    totalDebit,
		"total_credit":   totalCredit,
		"closing_amount": ledger.OpeningBalance + totalDebit - totalCredit,
	})
}

// IncomeStatement handlers

func GetIncomeStatements(c *gin.Context) {
	var statements []models.IncomeStatement
	if err := config.DB.Preload("Ledger").Find(&statements).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve income statements")
		return
	}
	c.JSON(http.StatusOK, statements)
}

func CreateIncomeStatement(c *gin.Context) {
	var input IncomeStatementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	statement := models.IncomeStatement{
		LedgerID:   input.LedgerID,
		IncomeType: input.IncomeType,
		Amount:     input.Amount,
	}
	if err := config.DB.Create(&statement).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create income statement")
		return
	}
	c.JSON(http.StatusCreated, statement)
}

// BalanceSheet handlers

func GetBalanceSheets(c *gin.Context) {
	var sheets []models.BalanceSheet
	if err := config.DB.Preload("Ledger").Find(&sheets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve balance sheets")
		return
	}
	c.JSON(http.StatusOK, sheets)
}

func CreateBalanceSheet(c *gin.Context) {
	var input BalanceSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sheet := models.BalanceSheet{
		LedgerID:    input.LedgerID,
		BalanceType: input.BalanceType,
		Amount:      input.Amount,
	}
	if err := config.DB.Create(&sheet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create balance sheet")
		return
	}
	c.JSON(http.StatusCreated, sheet)
}
