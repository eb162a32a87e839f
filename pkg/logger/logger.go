package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// Init inicializa o logger global
func Init() {
	var err error
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json" // logs estruturados em JSON
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"

	log, err = cfg.Build()
	if err != nil {
		panic(err)
	}
}

// Sugar retorna um logger "friendly" para uso printf-like
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Logger retorna o logger estruturado
func Logger() *zap.Logger {
	return log
}
