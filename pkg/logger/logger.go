package logger

import (
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Loggers per concern. They are no-ops until InitLoggers runs, so packages
// can log from tests without any setup.
var (
	ErrorLogger    = zap.NewNop()
	AuditLogger    = zap.NewNop()
	RequestLogger  = zap.NewNop()
	SecurityLogger = zap.NewNop()
	SystemLogger   = zap.NewNop()
	ContextLogger  = zap.NewNop()
)

func newLogger(filePath string, level zapcore.Level) (*zap.Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	ws := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		level,
	)
	return zap.New(core), nil
}

func mustLogger(dir, name string, level zapcore.Level) *zap.Logger {
	l, err := newLogger(filepath.Join(dir, name), level)
	if err != nil {
		log.Fatalf("Cannot create %s logger: %v", name, err)
	}
	return l
}

// InitLoggers opens one JSON log file per concern under dir (LOG_DIR, default "logs").
func InitLoggers() {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Cannot create log directory %s: %v", dir, err)
	}

	ErrorLogger = mustLogger(dir, "errors.log", zapcore.ErrorLevel)
	AuditLogger = mustLogger(dir, "audit.log", zapcore.InfoLevel)
	RequestLogger = mustLogger(dir, "request.log", zapcore.InfoLevel)
	SecurityLogger = mustLogger(dir, "security.log", zapcore.WarnLevel)
	SystemLogger = mustLogger(dir, "system.log", zapcore.InfoLevel)
	ContextLogger = mustLogger(dir, "context.log", zapcore.DebugLevel)
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SecurityLogger.Sync()
	_ = SystemLogger.Sync()
	_ = ContextLogger.Sync()
}
