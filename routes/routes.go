package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restro-backend/config"
	"restro-backend/controllers"
	"restro-backend/middlewares"
	"restro-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middlewares.RequestID())
	r.Use(config.PerformanceLogger())
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	r.POST("/api/login", controllers.Login)
	r.POST("/api/login-passcode", controllers.PasscodeLogin)
	r.POST("/api/logout", controllers.Logout)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Driver accounts only reach the dispatch surface below;
		// everything else requires a staff or admin role.
		staff := api.Group("", utils.StaffOnly())

		// Catalog routes
		categories := staff.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		dishes := staff.Group("/dishes")
		{
			dishes.POST("", controllers.CreateDish)
			dishes.GET("", controllers.GetDishes)
			dishes.GET("/:id", controllers.GetDish)
			dishes.PUT("/:id", controllers.UpdateDish)
			dishes.DELETE("/:id", controllers.DeleteDish)
		}
		staff.GET("/search-dishes", controllers.SearchDishes)

		variants := staff.Group("/variants")
		{
			variants.POST("", controllers.CreateDishVariant)
			variants.GET("", controllers.GetDishVariants)
			variants.DELETE("/:id", controllers.DeleteDishVariant)
		}

		// Order routes
		orders := staff.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.DELETE("/:id", controllers.DeleteOrder)
			orders.POST("/:id/cancel_order", controllers.CancelOrder)
			orders.POST("/:id/change_order_type", controllers.ChangeOrderType)
			orders.GET("/user_order_history", controllers.UserOrderHistory)
		}
		staff.PATCH("/order-status/:id", controllers.UpdateOrderStatus)

		// Bill routes
		bills := staff.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/:id", controllers.GetBill)
			bills.PUT("/:id", controllers.UpdateBill)
			bills.DELETE("/:id", controllers.DeleteBill)
			bills.POST("/:id/cancel_order", controllers.CancelOrderByBill)
		}

		// Notification routes
		notifications := staff.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.GET("/unread", controllers.GetUnreadNotifications)
			notifications.POST("/:id/mark_as_read", controllers.MarkNotificationAsRead)
			notifications.DELETE("/:id", controllers.DeleteNotification)
		}

		// Floor and table routes
		floors := staff.Group("/floors")
		{
			floors.GET("", controllers.GetFloors)
			floors.POST("", controllers.CreateFloor)
			floors.DELETE("/:id", controllers.DeleteFloor)
		}

		tables := staff.Group("/tables")
		{
			tables.GET("", controllers.GetTables)
			tables.POST("", controllers.CreateTable)
			tables.PUT("/:id", controllers.UpdateTable)
			tables.DELETE("/:id", controllers.DeleteTable)
		}

		// Coupon routes
		coupons := staff.Group("/coupons")
		{
			coupons.GET("", controllers.GetCoupons)
			coupons.POST("", controllers.CreateCoupon)
			coupons.PUT("/:id", controllers.UpdateCoupon)
			coupons.DELETE("/:id", controllers.DeleteCoupon)
			coupons.POST("/apply", controllers.ApplyCoupon)
		}

		// Mess routes
		messTypes := staff.Group("/mess-types")
		{
			messTypes.GET("", controllers.GetMessTypes)
			messTypes.POST("", controllers.CreateMessType)
			messTypes.DELETE("/:id", controllers.DeleteMessType)
		}

		menus := staff.Group("/menus")
		{
			menus.GET("", controllers.GetMenus)
			menus.POST("", controllers.CreateMenu)
			menus.DELETE("/:id", controllers.DeleteMenu)
		}

		menuItems := staff.Group("/menu-items")
		{
			menuItems.POST("", controllers.CreateMenuItem)
			menuItems.DELETE("/:id", controllers.DeleteMenuItem)
		}

		messes := staff.Group("/messes")
		{
			messes.GET("", controllers.GetMesses)
			messes.POST("", controllers.CreateMess)
			messes.GET("/:id", controllers.GetMess)
			messes.PUT("/:id", controllers.UpdateMess)
			messes.DELETE("/:id", controllers.DeleteMess)
			messes.GET("/mess_report", controllers.MessReport)
		}

		messTransactions := staff.Group("/mess-transactions")
		{
			messTransactions.GET("", controllers.GetMessTransactions)
			messTransactions.POST("", controllers.CreateMessTransaction)
		}

		// Credit routes
		creditUsers := staff.Group("/credit-users")
		{
			creditUsers.GET("", controllers.GetCreditUsers)
			creditUsers.POST("", controllers.CreateCreditUser)
			creditUsers.GET("/get_active_users", controllers.GetActiveCreditUsers)
			creditUsers.GET("/:id", controllers.GetCreditUser)
			creditUsers.PUT("/:id", controllers.UpdateCreditUser)
			creditUsers.DELETE("/:id", controllers.DeleteCreditUser)
			creditUsers.POST("/:id/make_payment", controllers.MakeCreditPayment)
		}

		staff.GET("/credit-orders", controllers.GetCreditOrders)

		creditTransactions := staff.Group("/credit-transactions")
		{
			creditTransactions.GET("", controllers.GetCreditTransactions)
			creditTransactions.POST("", controllers.CreateCreditTransaction)
		}

		// Delivery routes
		drivers := api.Group("/delivery-drivers")
		{
			drivers.GET("", controllers.GetDeliveryDrivers)
			drivers.GET("/:id", controllers.GetDeliveryDriver)
			drivers.POST("/:id/toggle_available", controllers.ToggleDriverAvailable)
			drivers.POST("/:id/toggle_active", controllers.ToggleDriverActive)
		}

		deliveryOrders := api.Group("/delivery-orders")
		{
			deliveryOrders.GET("", controllers.GetDeliveryOrders)
			deliveryOrders.GET("/:id", controllers.GetDeliveryOrder)
			deliveryOrders.PATCH("/:id/update_status", controllers.UpdateDeliveryStatus)
		}

		// Accounting routes
		natureGroups := staff.Group("/nature-groups")
		{
			natureGroups.GET("", controllers.GetNatureGroups)
			natureGroups.POST("", controllers.CreateNatureGroup)
			natureGroups.DELETE("/:id", controllers.DeleteNatureGroup)
		}

		mainGroups := staff.Group("/main-groups")
		{
			mainGroups.GET("", controllers.GetMainGroups)
			mainGroups.POST("", controllers.CreateMainGroup)
			mainGroups.DELETE("/:id", controllers.DeleteMainGroup)
		}

		ledgers := staff.Group("/ledgers")
		{
			ledgers.GET("", controllers.GetLedgers)
			ledgers.POST("", controllers.CreateLedger)
			ledgers.DELETE("/:id", controllers.DeleteLedger)
		}

		transactions := staff.Group("/transactions")
		{
			transactions.GET("", controllers.GetLedgerTransactions)
			transactions.POST("", controllers.CreateLedgerTransaction)
			transactions.GET("/ledger_report", controllers.LedgerReport)
		}

		incomeStatements := staff.Group("/income-statements")
		{
			incomeStatements.GET("", controllers.GetIncomeStatements)
			incomeStatements.POST("", controllers.CreateIncomeStatement)
		}

		balanceSheets := staff.Group("/balance-sheets")
		{
			balanceSheets.GET("", controllers.GetBalanceSheets)
			balanceSheets.POST("", controllers.CreateBalanceSheet)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		staff.GET("/reports/sales", reportController.SalesReport)
		staff.GET("/reports/trends", reportController.SalesTrends)
		staff.GET("/dashboard", reportController.GetDashboard)

		// Profile routes
		staff.GET("/logo-info", controllers.GetLogoInfo)
		staff.PUT("/logo-info", controllers.UpdateLogoInfo)
	}

	return r
}
