package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/handlers"
	"CARTOPIA_BACK-END/internal/metrics"
	"CARTOPIA_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	forgotPasswordHandler *handlers.ForgotPasswordHandler,
	profileHandler *handlers.ProfileHandler,
	productHandler *handlers.ProductHandler,
	cartHandler *handlers.CartHandler,
	orderHandler *handlers.OrderHandler,
	healthHandler *handlers.HealthHandler,
	collector *metrics.Collector,
	jwtCfg *config.JWTConfig,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// User routes
	http.HandleFunc("/api/user/register", authHandler.Register)
	http.HandleFunc("/api/user/login", authHandler.Login)
	http.HandleFunc("/api/user/admin", authHandler.AdminLogin)
	http.HandleFunc("/api/user/profile", middleware.AuthMiddleware(profileHandler.Profile, jwtCfg))
	http.HandleFunc("/api/user/forgot-password", forgotPasswordHandler.ForgotPassword)
	http.HandleFunc("/api/user/verify-otp", forgotPasswordHandler.VerifyOTP)
	http.HandleFunc("/api/user/reset-password", forgotPasswordHandler.ResetPassword)

	// Product routes
	http.HandleFunc("/api/product/add", middleware.AdminMiddleware(productHandler.Add, jwtCfg))
	http.HandleFunc("/api/product/remove", middleware.AdminMiddleware(productHandler.Remove, jwtCfg))
	http.HandleFunc("/api/product/list", productHandler.List)
	http.HandleFunc("/api/product/single", productHandler.Single)

	// Cart routes
	http.HandleFunc("/api/cart/get", middleware.AuthMiddleware(cartHandler.Get, jwtCfg))
	http.HandleFunc("/api/cart/add", middleware.AuthMiddleware(cartHandler.Add, jwtCfg))
	http.HandleFunc("/api/cart/update", middleware.AuthMiddleware(cartHandler.Update, jwtCfg))

	// Order routes
	http.HandleFunc("/api/order/place", middleware.AuthMiddleware(orderHandler.Place, jwtCfg))
	http.HandleFunc("/api/order/userorders", middleware.AuthMiddleware(orderHandler.UserOrders, jwtCfg))
	http.HandleFunc("/api/order/cancel", middleware.AuthMiddleware(orderHandler.Cancel, jwtCfg))
	http.HandleFunc("/api/order/list", middleware.AdminMiddleware(orderHandler.List, jwtCfg))
	http.HandleFunc("/api/order/status", middleware.AdminMiddleware(orderHandler.Status, jwtCfg))

	// Metrics and API docs
	http.Handle("/metrics", collector.Handler())
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Cartopia backend is running."))
}
