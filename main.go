package main

import (
	"time"

	"go.uber.org/zap"

	"mnemo-go/internal/app"
	"mnemo-go/internal/config"
	"mnemo-go/internal/events"
	logger "mnemo-go/internal/logging"
	"mnemo-go/internal/models"
	"mnemo-go/internal/repository"
	"mnemo-go/internal/router"
	"mnemo-go/internal/session"
	"mnemo-go/internal/store"
)

func main() {
	// Console-only logger for the bootstrap phase, before the configured
	// logger exists.
	boot, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}

	if err := config.Init(".", boot); err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	logCfg := config.Conf.Logging
	log, err := logger.Init(logger.Options{
		Directory:  logCfg.Directory,
		MaxSize:    logCfg.MaxSize,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAge,
		Compress:   logCfg.Compress,
	})
	if err != nil {
		boot.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize the blob store
	blobs, err := store.Open(config.Conf.Database, log)
	if err != nil {
		log.Fatal("Failed to open blob store", zap.Error(err))
	}

	// Load the starter tasks if a seed file is configured
	var seedTasks []models.Task
	if path := config.Conf.App.SeedFile; path != "" {
		seed, err := models.LoadTaskSeed(path)
		if err != nil {
			log.Fatal("Failed to load task seed", zap.Error(err))
		}
		seedTasks = seed.Tasks
	}

	repo, err := repository.New(blobs, log, seedTasks)
	if err != nil {
		log.Fatal("Failed to build repository", zap.Error(err))
	}

	holder := session.NewHolder(blobs, log)
	bus := events.NewBus(log)

	// Cross-cutting observability hooks for the domain events.
	for _, event := range []string{events.UserLogin, events.UserRegistered, events.UserLogout, events.TaskCompleted} {
		bus.Subscribe(event, func(event string, _ any) {
			log.Info("Domain event", zap.String("event", event))
		})
	}

	ttl := time.Duration(config.Conf.App.NotificationTTLSeconds) * time.Second
	ctrl := app.New(repo, holder, bus, log, ttl)
	defer ctrl.Close()

	// Setup router, passing the logger to it
	r := router.Setup(log, ctrl, blobs)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
