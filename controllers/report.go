// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
)

// ReportController handles all reporting functions
type ReportController struct{}

// SalesSummary represents the sales report for a date range
type SalesSummary struct {
	TotalRevenue   float64          `json:"totalRevenue"`
	OrderCount     int              `json:"orderCount"`
	CashTotal      float64          `json:"cashTotal"`
	BankTotal      float64          `json:"bankTotal"`
	CreditTotal    float64          `json:"creditTotal"`
	DeliveryCharge float64          `json:"deliveryCharge"`
	TopDishes      []DishSummary    `json:"topDishes"`
	ByOrderType    []TypeBreakdown  `json:"byOrderType"`
}

type DishSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type TypeBreakdown struct {
	OrderType string  `json:"orderType"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
}

type DashboardSummary struct {
	TodayRevenue      float64         `json:"todayRevenue"`
	TodayOrders       int             `json:"todayOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	ActiveDeliveries  int             `json:"activeDeliveries"`
	MonthRevenue      float64         `json:"monthRevenue"`
	MonthGrowth       float64         `json:"monthGrowth"`
	AvgOrderValue     float64         `json:"avgOrderValue"`
	CreditOutstanding float64         `json:"creditOutstanding"`
	MessPending       float64         `json:"messPending"`
	PopularHours      []HourBucket    `json:"popularHours"`
	CategorySales     []CategorySlice `json:"categorySales"`
}

type HourBucket struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type CategorySlice struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type TrendPoint struct {
	Day     time.Time `json:"day"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

// SalesReport returns revenue totals and breakdowns for a date range.
// Optional order_type, payment_method and status filters narrow the
// result; status defaults to delivered.
func (rc *ReportController) SalesReport(c *gin.Context) {
	start, end, ok := rc.parseRange(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", models.OrderStatusDelivered)
	delivered := config.DB.Model(&models.Order{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", status, start, end)
	if orderType := c.Query("order_type"); orderType != "" {
		delivered = delivered.Where("order_type = ?", orderType)
	}
	if method := c.Query("payment_method"); method != "" {
		delivered = delivered.Where("payment_method = ?", method)
	}

	var summary SalesSummary
	row := struct {
		TotalRevenue   float64
		OrderCount     int
		CashTotal      float64
		BankTotal      float64
		DeliveryCharge float64
	}{}
	if err := delivered.
		Select("COALESCE(SUM(total_amount), 0) as total_revenue, COUNT(*) as order_count, COALESCE(SUM(cash_amount), 0) as cash_total, COALESCE(SUM(bank_amount), 0) as bank_total, COALESCE(SUM(delivery_charge), 0) as delivery_charge").
		Scan(&row).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute sales totals")
		return
	}
	summary.TotalRevenue = row.TotalRevenue
	summary.OrderCount = row.OrderCount
	summary.CashTotal = row.CashTotal
	summary.BankTotal = row.BankTotal
	summary.DeliveryCharge = row.DeliveryCharge

	if err := config.DB.Model(&models.Order{}).
		Where("status = ? AND payment_method = ? AND created_at BETWEEN ? AND ?",
			status, models.PaymentMethodCredit, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.CreditTotal).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute credit totals")
		return
	}

	topDishes, err := rc.getTopDishes(start, end, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top dishes")
		return
	}
	summary.TopDishes = topDishes

	var byType []TypeBreakdown
	if err := config.DB.Model(&models.Order{}).
		Select("order_type, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status = ? AND created_at BETWEEN ? AND ?", status, start, end).
		Group("order_type").
		Scan(&byType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute order type breakdown")
		return
	}
	summary.ByOrderType = byType

	c.JSON(http.StatusOK, summary)
}

// GetDashboard returns the operational dashboard summary.
func (rc *ReportController) GetDashboard(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var summary DashboardSummary

	if err := config.DB.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, today).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TodayRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get today's revenue")
		return
	}

	var todayOrders int64
	if err := config.DB.Model(&models.Order{}).
		Where("created_at >= ?", today).
		Count(&todayOrders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count today's orders")
		return
	}
	summary.TodayOrders = int(todayOrders)

	var pending int64
	if err := config.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pending).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count pending orders")
		return
	}
	summary.PendingOrders = int(pending)

	var activeDeliveries int64
	if err := config.DB.Model(&models.DeliveryOrder{}).
		Where("status IN ?", []string{models.DeliveryStatusAccepted, models.DeliveryStatusInProgress}).
		Count(&activeDeliveries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count active deliveries")
		return
	}
	summary.ActiveDeliveries = int(activeDeliveries)

	monthRevenue, err := rc.getRevenue(firstOfMonth, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	summary.MonthRevenue = monthRevenue

	lastMonthRevenue, err := rc.getRevenue(firstOfMonth.AddDate(0, -1, 0), firstOfMonth.Add(-time.Second))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}
	summary.MonthGrowth = rc.calculateGrowthPercentage(monthRevenue, lastMonthRevenue)

	var deliveredCount int64
	if err := config.DB.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, firstOfMonth).
		Count(&deliveredCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count delivered orders")
		return
	}
	if deliveredCount > 0 {
		summary.AvgOrderValue = monthRevenue / float64(deliveredCount)
	}

	if err := config.DB.Table("orders").
		Select("EXTRACT(HOUR FROM created_at)::int as hour, COUNT(*) as orders").
		Where("created_at >= ? AND deleted_at IS NULL", firstOfMonth).
		Group("EXTRACT(HOUR FROM created_at)").
		Order("orders DESC").
		Limit(5).
		Scan(&summary.PopularHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute popular hours")
		return
	}

	if err := config.DB.Table("order_items").
		Select("categories.name, SUM(order_items.quantity * dishes.price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN dishes ON dishes.id = order_items.dish_id").
		Joins("JOIN categories ON categories.id = dishes.category_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.deleted_at IS NULL",
			models.OrderStatusDelivered, firstOfMonth).
		Group("categories.name").
		Order("revenue DESC").
		Scan(&summary.CategorySales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute category sales")
		return
	}

	if err := config.DB.Model(&models.CreditUser{}).
		Select("COALESCE(SUM(total_due), 0)").
		Scan(&summary.CreditOutstanding).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get credit outstanding")
		return
	}

	if err := config.DB.Model(&models.Mess{}).
		Select("COALESCE(SUM(pending_amount), 0)").
		Scan(&summary.MessPending).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get mess pending total")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SalesTrends returns per-day revenue for the requested range and the
// growth against the preceding period of the same length.
func (rc *ReportController) SalesTrends(c *gin.Context) {
	start, end, ok := rc.parseRange(c)
	if !ok {
		return
	}

	var points []TrendPoint
	if err := config.DB.Table("orders").
		Select("DATE_TRUNC('day', created_at) as day, COALESCE(SUM(total_amount), 0) as revenue, COUNT(*) as orders").
		Where("status = ? AND created_at BETWEEN ? AND ? AND deleted_at IS NULL", models.OrderStatusDelivered, start, end).
		Group("DATE_TRUNC('day', created_at)").
		Order("day").
		Scan(&points).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute sales trends")
		return
	}

	current, err := rc.getRevenue(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute current period revenue")
		return
	}
	span := end.Sub(start)
	previous, err := rc.getRevenue(start.Add(-span), start)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute previous period revenue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":          points,
		"currentRevenue":  current,
		"previousRevenue": previous,
		"growth":          rc.calculateGrowthPercentage(current, previous),
	})
}

// Helper functions for reports

func (rc *ReportController) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := utils.BeginningOfDay(now.AddDate(0, 0, -30))
	end := now

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
			return start, end, false
		}
		end = utils.EndOfDay(parsed)
	}
	if end.Before(start) {
		utils.RespondWithError(c, http.StatusBadRequest, "end_date must not be before start_date")
		return start, end, false
	}
	return start, end, true
}

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Order{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", models.OrderStatusDelivered, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopDishes(start, end time.Time, limit int) ([]DishSummary, error) {
	var dishes []DishSummary

	err := config.DB.Table("order_items").
		Select("dishes.name, SUM(order_items.quantity) as count, SUM(order_items.quantity * dishes.price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN dishes ON dishes.id = order_items.dish_id").
		Where("orders.status = ? AND orders.created_at BETWEEN ? AND ? AND orders.deleted_at IS NULL AND dishes.deleted_at IS NULL",
			models.OrderStatusDelivered, start, end).
		Group("dishes.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&dishes).Error

	return dishes, err
}
