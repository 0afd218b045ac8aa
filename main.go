package main

import (
	"fmt"
	"log"
	"os"

	"notprofi-backend/config"
	"notprofi-backend/models"
	"notprofi-backend/routes"
	"notprofi-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.PropertyManager{},
		&models.PrivateCustomer{},
		&models.Company{},
		&models.Job{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.BillingSettings{},
		&models.ReminderLog{},
	)

	if err := models.SeedBillingSettings(config.DB); err != nil {
		log.Printf("Failed to seed billing settings: %v", err)
	}
}

func main() {
	billing := services.NewBillingService(config.DB)
	reminders := services.NewReminderService(config.DB, billing)
	reminders.StartScheduler()

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
