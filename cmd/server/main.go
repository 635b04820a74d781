package main

import (
	"log"

	"shopcore-be/internal/cart"
	"shopcore-be/internal/category"
	"shopcore-be/internal/config"
	"shopcore-be/internal/db"
	"shopcore-be/internal/logger"
	"shopcore-be/internal/order"
	"shopcore-be/internal/product"
	"shopcore-be/internal/rest"
	"shopcore-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.JWTSecret)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, categoryRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	router := rest.NewRouter(rest.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		UserSvc:     userSvc,
		CategorySvc: categorySvc,
		ProductSvc:  productSvc,
		CartSvc:     cartSvc,
		OrderSvc:    orderSvc,
	})

	log.Printf("API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
