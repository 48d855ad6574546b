package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/routes"
	"restro-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.LogoInfo{},
		&models.Category{},
		&models.Dish{},
		&models.DishVariant{},
		&models.Floor{},
		&models.Table{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Bill{},
		&models.Notification{},
		&models.DeliveryDriver{},
		&models.DeliveryOrder{},
		&models.MessType{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Mess{},
		&models.MessTransaction{},
		&models.CreditUser{},
		&models.CreditOrder{},
		&models.CreditTransaction{},
		&models.NatureGroup{},
		&models.MainGroup{},
		&models.Ledger{},
		&models.LedgerTransaction{},
		&models.IncomeStatement{},
		&models.BalanceSheet{},
	)
}

func main() {
	services.NewReminderService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
