package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/config"
	"github.com/git-webzoom/assistente-x-hub/internal/downdetect"
	"github.com/git-webzoom/assistente-x-hub/internal/features/api_keys"
	"github.com/git-webzoom/assistente-x-hub/internal/features/audit_logs"
	"github.com/git-webzoom/assistente-x-hub/internal/features/gateway"
	"github.com/git-webzoom/assistente-x-hub/internal/features/resources"
	system_healthcheck "github.com/git-webzoom/assistente-x-hub/internal/features/system/healthcheck"
	users_controllers "github.com/git-webzoom/assistente-x-hub/internal/features/users/controllers"
	users_middleware "github.com/git-webzoom/assistente-x-hub/internal/features/users/middleware"
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	users_services "github.com/git-webzoom/assistente-x-hub/internal/features/users/services"
	"github.com/git-webzoom/assistente-x-hub/internal/features/webhooks"
	"github.com/git-webzoom/assistente-x-hub/internal/storage"
	cache_utils "github.com/git-webzoom/assistente-x-hub/internal/util/cache"
	env_utils "github.com/git-webzoom/assistente-x-hub/internal/util/env"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Assistente X Hub API
// @version 1.0
// @description Multi-tenant CRM gateway: dashboard API under /api/v1, external API under /v1

// @host localhost:4010
// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()

	cache_utils.TestCacheConnection()

	runMigrations(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (user auth and probes)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	downdetect.GetDowndetectController().RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	// Dashboard routes behind user auth
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	api_keys.GetApiKeyController().RegisterRoutes(protected)
	webhooks.GetWebhookController().RegisterRoutes(protected)
	audit_logs.GetApiRequestLogController().RegisterRoutes(protected)
	resources.GetCustomFieldDefController().RegisterRoutes(protected)

	// External API, authenticated by API key
	gateway.GetGatewayController().RegisterRoutes(r)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":4010",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	// let in-flight webhook deliveries write their logs
	webhooks.GetWebhookService().Wait()

	log.Info("Server gracefully stopped")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	err := storage.GetDb().AutoMigrate(
		&users_models.Tenant{},
		&users_models.User{},
		&users_models.SecretKey{},
		&api_keys.ApiKey{},
		&webhooks.Webhook{},
		&webhooks.WebhookDeliveryLog{},
		&audit_logs.ApiRequestLog{},
		&resources.Contact{},
		&resources.Product{},
		&resources.Card{},
		&resources.Appointment{},
		&resources.Task{},
		&resources.CustomFieldDef{},
	)
	if err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	ginApp.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
			"x-api-key",
			"Access-Control-Request-Method",
			"Access-Control-Request-Headers",
		},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}
