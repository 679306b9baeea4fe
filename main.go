package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/routes"
	"github.com/Auguzcht/NextGen-sub001/service"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	defer repository.CloseMongoDB()

	mapper, err := service.NewBookingMapper(cfg.Booking,
		repository.Collection(repository.AssignmentsCollection),
		repository.Collection(repository.StaffCollection))
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("Failed to build booking mapper")
	}

	mailer := service.NewMailer(cfg.Mail)
	controllers.SetMailer(mailer)

	syncer := service.NewBookingSyncer(mapper, cfg.Provider)
	controllers.SetSyncer(syncer)

	webhook := controllers.NewWebhookHandler(mapper, cfg.Booking.WebhookSecret)

	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware())

	routes.RegisterRoutes(router, webhook)

	utils.Logger.Info().Msg("Starting system initialization...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("Failed to initialize collections")
	}
	if err := repository.InitializeServices(cfg.Booking); err != nil {
		utils.Logger.Error().Err(err).Msg("Failed to initialize service records")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("Failed to initialize admin account")
	}
	utils.Logger.Info().Msg("System initialization complete")

	syncer.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Msgf("Server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Server shutdown failed")
	}

	utils.Logger.Info().Msg("Server stopped")
}
