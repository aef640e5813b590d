package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	// Sink is a file path; empty means stdout.
	Sink string `yaml:"sink" envconfig:"LOG_SINK"`
}

func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	ws := zapcore.AddSync(os.Stdout)
	if cfg.Sink != "" {
		f, _, err := zap.Open(cfg.Sink)
		if err == nil {
			ws = f
		}
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zap.NewAtomicLevelAt(cfg.LogLevel))
	return zap.New(core, zap.AddCaller()).Named(name)
}
