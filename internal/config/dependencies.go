package config

import (
	"context"
	"database/sql"

	"h2o-bounty/internal/contracts"
	"h2o-bounty/internal/repository"
	"h2o-bounty/internal/session"
	"h2o-bounty/internal/websocket"
	"h2o-bounty/pkg/aptos"
	"h2o-bounty/pkg/wallet"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	DB          *sql.DB
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client

	Node     *aptos.Client
	Bounty   *contracts.Service
	Sessions *session.Manager
	Hub      *websocket.Hub
	// TxLog is nil when no database is configured.
	TxLog *repository.TxLog
	// Signer is the server wallet; nil when none is configured.
	Signer wallet.Wallet

	UploadDir = "uploads"
	PublicURL = "http://localhost:3004"
)
