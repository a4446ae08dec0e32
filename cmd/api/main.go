package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MechekakYounes/Phones-Store-Management/internal/handler"
	"github.com/MechekakYounes/Phones-Store-Management/internal/middleware"
	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"
	"github.com/MechekakYounes/Phones-Store-Management/internal/service"
	"github.com/MechekakYounes/Phones-Store-Management/internal/ws"
	"github.com/MechekakYounes/Phones-Store-Management/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.User{}, &model.Brand{}, &model.Customer{}, &model.Supplier{},
		&model.Product{}, &model.BuyPhone{}, &model.Sale{}, &model.SaleItem{},
		&model.Purchase{}, &model.PurchaseItem{}, &model.Exchange{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedDefaultBrands(db)

	// 3. WebSocket hub for the live activity feed
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Wiring layers
	userRepo := repository.NewUserRepo(db)
	brandRepo := repository.NewBrandRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	phoneRepo := repository.NewBuyPhoneRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	exchangeRepo := repository.NewExchangeRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	inventoryService := service.NewInventoryService(phoneRepo, brandRepo, productRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, phoneRepo, customerRepo, db, wsHub)
	exchangeService := service.NewExchangeService(exchangeRepo, saleRepo, phoneRepo, customerRepo, productRepo, db, wsHub)
	dashboardService := service.NewDashboardService(saleRepo)
	historyService := service.NewHistoryService(saleRepo, phoneRepo, exchangeRepo)
	brandService := service.NewBrandService(brandRepo)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, db)
	productService := service.NewProductService(productRepo, brandRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	phoneHandler := handler.NewBuyPhoneHandler(inventoryService)
	saleHandler := handler.NewSaleHandler(saleService)
	exchangeHandler := handler.NewExchangeHandler(exchangeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, historyService)
	brandHandler := handler.NewBrandHandler(brandService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	productHandler := handler.NewProductHandler(productService)

	// 5. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Phones Store Management v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api")

	// Public
	api.Post("/login", authHandler.Login)
	api.Get("/check-super-admin", authHandler.CheckSuperAdmin)
	api.Post("/setup-super-admin", authHandler.SetupSuperAdmin)

	// Authenticated
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/user", authHandler.Me)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/update-profile", authHandler.UpdateProfile)

	protected.Get("/buy-phones", middleware.RequirePermission("manage_buy_phones"), phoneHandler.List)
	protected.Post("/buy-phones", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Create)
	protected.Get("/buy-phones-stats", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Statistics)
	protected.Get("/buy-phones/:id", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Show)
	protected.Put("/buy-phones/:id", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Update)
	protected.Delete("/buy-phones/:id", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Delete)
	protected.Post("/buy-phones/:id/sell", middleware.RequirePermission("manage_buy_phones"), phoneHandler.Sell)
	protected.Post("/buy-phones/:id/mark-tested", middleware.RequirePermission("manage_buy_phones"), phoneHandler.MarkTested)
	protected.Post("/buy-phones/:id/mark-listed", middleware.RequirePermission("manage_buy_phones"), phoneHandler.MarkListed)
	protected.Post("/buy-phones/:id/mark-returned", middleware.RequirePermission("manage_buy_phones"), phoneHandler.MarkReturned)

	protected.Get("/sales", middleware.RequirePermission("manage_sales"), saleHandler.List)
	protected.Post("/sales", middleware.RequirePermission("manage_sales"), saleHandler.Create)

	protected.Get("/exchanges", middleware.RequirePermission("manage_exchanges"), exchangeHandler.List)
	protected.Post("/exchanges", middleware.RequirePermission("manage_exchanges"), exchangeHandler.Create)
	protected.Get("/exchanges/:id", middleware.RequirePermission("manage_exchanges"), exchangeHandler.Show)
	protected.Post("/exchanges/:id/complete", middleware.RequirePermission("manage_exchanges"), exchangeHandler.Complete)
	protected.Post("/exchanges/:id/cancel", middleware.RequirePermission("manage_exchanges"), exchangeHandler.Cancel)
	protected.Delete("/exchanges/:id", middleware.RequirePermission("manage_exchanges"), exchangeHandler.Delete)

	protected.Get("/dashboard/statistics", middleware.RequirePermission("view_dashboard"), dashboardHandler.Statistics)
	protected.Get("/history", middleware.RequirePermission("view_dashboard"), dashboardHandler.History)

	protected.Get("/brands", brandHandler.List)
	protected.Get("/brands-stats", brandHandler.Statistics)
	protected.Post("/brands", middleware.RequirePermission("manage_products"), brandHandler.Create)
	protected.Put("/brands/:id", middleware.RequirePermission("manage_products"), brandHandler.Update)
	protected.Delete("/brands/:id", middleware.RequirePermission("manage_products"), brandHandler.Delete)

	protected.Get("/customers", middleware.RequirePermission("manage_customers"), customerHandler.List)
	protected.Get("/customers/:id", middleware.RequirePermission("manage_customers"), customerHandler.Show)

	protected.Get("/suppliers", middleware.RequirePermission("manage_suppliers"), supplierHandler.List)
	protected.Post("/suppliers", middleware.RequirePermission("manage_suppliers"), supplierHandler.Create)
	protected.Get("/suppliers/:id", middleware.RequirePermission("manage_suppliers"), supplierHandler.Show)
	protected.Put("/suppliers/:id", middleware.RequirePermission("manage_suppliers"), supplierHandler.Update)
	protected.Delete("/suppliers/:id", middleware.RequirePermission("manage_suppliers"), supplierHandler.Delete)

	protected.Get("/purchases", middleware.RequirePermission("manage_purchases"), purchaseHandler.List)
	protected.Post("/purchases", middleware.RequirePermission("manage_purchases"), purchaseHandler.Create)
	protected.Get("/purchases/:id", middleware.RequirePermission("manage_purchases"), purchaseHandler.Show)
	protected.Post("/purchases/:id/complete", middleware.RequirePermission("manage_purchases"), purchaseHandler.Complete)
	protected.Post("/purchases/:id/cancel", middleware.RequirePermission("manage_purchases"), purchaseHandler.Cancel)

	protected.Get("/products", middleware.RequirePermission("manage_products"), productHandler.List)
	protected.Post("/products", middleware.RequirePermission("manage_products"), productHandler.Create)
	protected.Get("/products/:id", middleware.RequirePermission("manage_products"), productHandler.Show)
	protected.Put("/products/:id", middleware.RequirePermission("manage_products"), productHandler.Update)
	protected.Delete("/products/:id", middleware.RequirePermission("manage_products"), productHandler.Delete)

	// Super admin user management
	users := protected.Group("/users", middleware.RequireSuperAdmin())
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Show)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/reset-password", userHandler.ResetPassword)
	protected.Get("/users-stats", middleware.RequireSuperAdmin(), userHandler.Statistics)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultBrands inserts the common manufacturers on first boot.
func seedDefaultBrands(db *gorm.DB) {
	var count int64
	db.Model(&model.Brand{}).Count(&count)
	if count > 0 {
		return
	}

	for _, name := range []string{"Apple", "Samsung", "Xiaomi", "Oppo", "Huawei", "Google", "OnePlus"} {
		brand := &model.Brand{Name: name}
		brand.CreatedBy = "system"
		if err := db.Create(brand).Error; err != nil {
			log.Printf("Warning: failed to seed brand %s: %v", name, err)
		}
	}
	log.Println("Default brands seeded")
}
