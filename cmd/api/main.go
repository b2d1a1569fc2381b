package main

import (
	"log"
	"time"

	"h2o-bounty/configs"
	v1 "h2o-bounty/internal/api/v1"
	"h2o-bounty/internal/config"
	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/internal/repository"
	"h2o-bounty/internal/session"
	myws "h2o-bounty/internal/websocket"
	"h2o-bounty/pkg/database"
	"h2o-bounty/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()
	config.UploadDir = cfg.UploadDir
	config.PublicURL = cfg.PublicURL

	// Transaction log is optional
	if cfg.HasDatabase() {
		config.DB = database.ConnectDB(cfg)
		defer config.DB.Close()
		repository.CreateTableIfNotExists(config.DB)
		config.TxLog = repository.NewTxLog(config.DB)
		logger.SystemLogger.Info("Database Connected")
	}

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()
	config.Sessions = session.NewManager(session.NewRedisStore(config.RedisClient), []byte(cfg.JWTSecret))

	node, err := config.NewNode(cfg)
	if err != nil {
		log.Fatalf("Could not create fullnode client: %v", err)
	}
	config.Node = node
	// A nil *TxLog must not reach the service as a non-nil Recorder.
	var recorder contracts.Recorder
	if config.TxLog != nil {
		recorder = config.TxLog
	}
	config.Bounty = config.NewBounty(cfg, config.Node, recorder)

	signer, err := config.LoadSigner(cfg, config.Node)
	if err != nil {
		log.Fatalf("Could not load signer key: %v", err)
	}
	if signer != nil {
		config.Signer = signer
		logger.SystemLogger.Info("Server wallet loaded", zap.String("address", signer.Address()))
	}

	logger.SystemLogger.Info("Network configured",
		zap.String("network", cfg.Network.Name),
		zap.String("node_url", cfg.Network.NodeURL),
		zap.String("module_address", config.Bounty.ModuleAddress()))

	hub := myws.NewHub()
	go hub.Run()
	defer hub.Stop()
	config.Hub = hub

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Daftarkan route API v1
	v1.RegisterRoutes(app)
	v1.RegisterWebsocket(app, hub)

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
