package main

import (
	"log"
	"net/http"

	"marketbridge/internal/address"
	"marketbridge/internal/cart"
	"marketbridge/internal/category"
	"marketbridge/internal/config"
	"marketbridge/internal/coupon"
	"marketbridge/internal/db"
	"marketbridge/internal/handler"
	"marketbridge/internal/logger"
	"marketbridge/internal/member"
	"marketbridge/internal/middleware"
	"marketbridge/internal/order"
	"marketbridge/internal/payment"
	"marketbridge/internal/product"
	"marketbridge/internal/review"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	memberRepo := member.NewRepository(database)
	memberSvc := member.NewService(memberRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	couponRepo := coupon.NewRepository(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, couponRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, memberRepo, addressRepo, productRepo, couponRepo)

	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	h := &handler.Handler{
		Member:   memberSvc,
		Address:  addressSvc,
		Category: categorySvc,
		Product:  productSvc,
		Cart:     cartSvc,
		Order:    orderSvc,
		Payment:  paymentSvc,
		Review:   reviewSvc,
	}

	mux := handler.NewRouter(h)

	var root http.Handler = mux
	root = middleware.AuthMiddleware(root)
	root = middleware.RateLimitMiddleware(root)
	root = middleware.LoggingMiddleware(root)
	root = middleware.RequestIDMiddleware(root)

	log.Printf("🚀 Server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, root))
}
