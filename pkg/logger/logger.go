package logger

import (
	"os"

	"go.uber.org/zap"
)

// Logger is the logging surface the rest of the code depends on.
// Key-value pairs follow the message, zap sugared style.
type Logger interface {
	Debug(msg string, values ...any)
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Panic(msg string, values ...any)
	Fatal(err error, values ...any)
	Printf(format string, args ...any)
}

func init() {
	var cfg zap.Config
	if os.Getenv("LOG_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if _, err := NewLogger(cfg); err != nil {
		panic(err)
	}
}

func Debug(msg string, values ...any) { GetLogger().Debug(msg, values...) }
func Info(msg string, values ...any)  { GetLogger().Info(msg, values...) }
func Warn(msg string, values ...any)  { GetLogger().Warn(msg, values...) }
func Error(msg string, values ...any) { GetLogger().Error(msg, values...) }
func Panic(msg string, values ...any) { GetLogger().Panic(msg, values...) }

func Fatal(err error, values ...any) { GetLogger().Fatal(err, values...) }
