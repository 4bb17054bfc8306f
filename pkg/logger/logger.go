package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init inicializa el logger global. En desarrollo usa consola legible,
// en cualquier otro entorno JSON estructurado.
func Init(env string) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.MessageKey = "msg"
		cfg.EncoderConfig.LevelKey = "level"
		cfg.EncoderConfig.CallerKey = "caller"
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l
}

// Logger retorna el logger estructurado
func Logger() *zap.Logger {
	return log
}
