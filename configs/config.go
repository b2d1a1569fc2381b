package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string

	RedisHost     string
	RedisPort     int
	RedisPassword string

	Network       Network
	ModuleAddress string
	HTTPTimeout   time.Duration
	TxWaitTimeout time.Duration

	// Server wallet. Either a plain hex key or an AES-GCM sealed one plus passphrase.
	SignerKey        string
	SignerSealedKey  string
	SignerPassphrase string

	JWTSecret string
	UploadDir string
	PublicURL string
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	port := getEnv("PORT", "3004")

	return Config{
		Port: port,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBNameTest: os.Getenv("DB_NAME_TEST"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getInt("REDIS_PORT", 6379),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		Network:       LoadNetwork(),
		ModuleAddress: os.Getenv("MODULE_ADDRESS"),
		HTTPTimeout:   getDuration("APTOS_HTTP_TIMEOUT", 30*time.Second),
		TxWaitTimeout: getDuration("TX_WAIT_TIMEOUT", 20*time.Second),

		SignerKey:        os.Getenv("SIGNER_PRIVATE_KEY"),
		SignerSealedKey:  os.Getenv("SIGNER_SEALED_KEY"),
		SignerPassphrase: os.Getenv("SIGNER_PASSPHRASE"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		PublicURL: getEnv("PUBLIC_URL", "http://localhost:"+port),
	}
}

// HasDatabase reports whether a Postgres transaction log is configured.
func (c Config) HasDatabase() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
