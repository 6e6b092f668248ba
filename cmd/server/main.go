package main

import (
	"log"

	"flowermart-be/internal/category"
	"flowermart-be/internal/config"
	"flowermart-be/internal/customer"
	"flowermart-be/internal/db"
	"flowermart-be/internal/handler"
	"flowermart-be/internal/logger"
	"flowermart-be/internal/notify"
	"flowermart-be/internal/order"
	"flowermart-be/internal/product"
	"flowermart-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	customerRepo := customer.NewRepository(database)
	customerSvc := customer.NewService(customerRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, customerRepo)

	notifier := notify.NewDispatcher(
		notify.NewEmailChannel(cfg),
		notify.NewZaloChannel(cfg),
	)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, customerSvc, notifier)

	r := handler.NewRouter(
		handler.NewAuthHandler(userSvc),
		handler.NewCategoryHandler(categorySvc),
		handler.NewProductHandler(productSvc),
		handler.NewCustomerHandler(customerSvc, orderSvc),
		handler.NewOrderHandler(orderSvc),
	)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
