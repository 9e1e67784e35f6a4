package main

import (
	"log"
	"os"

	"bingo-admin-service/internal/database"
	"bingo-admin-service/internal/handlers"
	"bingo-admin-service/internal/middleware"
	"bingo-admin-service/internal/services"
	"bingo-admin-service/internal/worker"
	"bingo-admin-service/pkg/clock"
	"bingo-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	clk := clock.System()

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	identityService := services.NewIdentityService(db, clk)
	balanceService := services.NewBalanceService(db, clk)
	commissionService := services.NewCommissionService(db)
	dashboardService := services.NewDashboardService(db, balanceService, clk)
	settingsService := services.NewSettingsService(db)
	userAdminService := services.NewUserAdminService(db)
	summaryService := services.NewSummaryService(db)
	archiveService := services.NewArchiveService(db, clk)

	// Handlers
	authHandler := handlers.NewAuthHandler(identityService)
	balanceHandler := handlers.NewBalanceHandler(balanceService, asynqClient)
	commissionHandler := handlers.NewCommissionHandler(commissionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, settingsService, summaryService)
	userHandler := handlers.NewUserHandler(userAdminService, identityService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Bingo Admin service",
		})
	})

	account := r.Group("/api/account")
	{
		account.POST("/register", authHandler.Register)
		account.POST("/login", authHandler.Login)
		account.POST("/refresh-token", authHandler.Refresh)
		account.GET("/profile", middleware.RequireAuth(identityService), authHandler.Profile)
	}

	balance := r.Group("/api/balance", middleware.RequireAuth(identityService))
	{
		balance.POST("/topup", middleware.RequireAdmin(), balanceHandler.TopUp)
		balance.GET("/:userId/balance", balanceHandler.GetBalance)
		balance.GET("/check-balance", balanceHandler.CheckBalance)
		balance.POST("/settle-game", balanceHandler.SettleGame)
		balance.POST("/close-game", balanceHandler.CloseGame)
		balance.POST("/bonus", balanceHandler.RecordBonus)
		balance.GET("/index", balanceHandler.LedgerHistory)
	}

	commissions := r.Group("/api/commissions", middleware.RequireAuth(identityService))
	{
		commissions.GET("/:userId", commissionHandler.GetTiers)
		commissions.POST("/save", commissionHandler.SaveTiers)
	}

	dashboard := r.Group("/api/dashboard", middleware.RequireAuth(identityService))
	{
		dashboard.GET("/index", dashboardHandler.Index)
		dashboard.GET("/sales", dashboardHandler.Sales)
		dashboard.GET("/sales/summary", dashboardHandler.SalesSummary)
		dashboard.GET("/admin-sales", middleware.RequireAdmin(), dashboardHandler.AdminSales)
		dashboard.GET("/sales-report", dashboardHandler.SalesReport)
		dashboard.GET("/sales-history", dashboardHandler.SummaryHistory)
		dashboard.GET("/commissions", middleware.RequireAdmin(), dashboardHandler.Commissions)
		dashboard.GET("/bonus", dashboardHandler.Bonus)
		dashboard.GET("/settings", dashboardHandler.GetSettings)
		dashboard.POST("/settings", dashboardHandler.UpdateSettings)
		dashboard.GET("/winning-pattern", dashboardHandler.WinningPattern)
	}

	users := r.Group("/api/users", middleware.RequireAuth(identityService), middleware.RequireAdmin())
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Add)
		users.PUT("/:userId", userHandler.Edit)
		users.PUT("/:userId/toggle-status", userHandler.ToggleStatus)
		users.POST("/update-password", userHandler.UpdatePassword)
	}

	// Start Cron Schedulers
	archiveService.StartScheduler()
	startSummaryScheduler(asynqClient, clk)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// startSummaryScheduler enqueues the previous day's rollup shortly after
// midnight. The worker process owns the actual computation.
func startSummaryScheduler(client *asynq.Client, clk clock.Clock) {
	c := cron.New()
	c.AddFunc("30 0 * * *", func() {
		yesterday := clk.Now().AddDate(0, 0, -1)
		task, err := worker.NewDailySummaryTask(common.FormatDay(yesterday))
		if err != nil {
			log.Printf("Could not build daily summary task: %v", err)
			return
		}
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("Could not enqueue daily summary task: %v", err)
		}
	})
	c.Start()
	log.Println("Daily summary scheduler started")
}
