package routes

import (
	"notprofi-backend/config"
	"notprofi-backend/controllers"
	"notprofi-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://admin.notprofi24.at",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestID())
	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Property manager routes
		managers := api.Group("/property-managers")
		{
			managers.POST("", controllers.CreatePropertyManager)
			managers.GET("", controllers.GetPropertyManagers)
			managers.GET("/:id", controllers.GetPropertyManager)
			managers.PUT("/:id", controllers.UpdatePropertyManager)
			managers.DELETE("/:id", controllers.DeletePropertyManager)
		}

		// Private customer routes
		customers := api.Group("/private-customers")
		{
			customers.POST("", controllers.CreatePrivateCustomer)
			customers.GET("", controllers.GetPrivateCustomers)
			customers.GET("/:id", controllers.GetPrivateCustomer)
			customers.PUT("/:id", controllers.UpdatePrivateCustomer)
			customers.DELETE("/:id", controllers.DeletePrivateCustomer)
		}

		// Partner company routes
		companies := api.Group("/companies")
		{
			companies.POST("", controllers.CreateCompany)
			companies.GET("", controllers.GetCompanies)
			companies.GET("/:id", controllers.GetCompany)
			companies.PUT("/:id", controllers.UpdateCompany)
			companies.DELETE("/:id", controllers.DeleteCompany)
		}

		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.POST("", controllers.CreateJob)
			jobs.GET("", controllers.GetJobs)
			jobs.GET("/:id", controllers.GetJob)
			jobs.PUT("/:id", controllers.UpdateJob)
			jobs.DELETE("/:id", controllers.DeleteJob)
			jobs.GET("/:id/pdf", controllers.GetJobPDF)
			jobs.POST("/:id/send-email", controllers.SendJobEmail)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.POST("/generate", controllers.GenerateInvoices)
			invoices.POST("/:id/mark-paid", controllers.MarkInvoicePaid)
			invoices.GET("/:id/pdf", controllers.GetInvoicePDF)
			invoices.POST("/:id/send-email", controllers.SendInvoiceEmail)
		}

		// Settings routes
		api.GET("/settings", controllers.GetSettings)
		api.PUT("/settings", controllers.UpdateSettings)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
