package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapFuncs builds a zap-backed sink for NewLogger. The returned flush
// function should be deferred by the caller; it drains buffered entries.
func NewZapFuncs(level string) (LogFuncs, func(), error) {
	zapLevel, err := parseZapLevel(level)
	if err != nil {
		return LogFuncs{}, nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.Encoding = "console"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	// Callers go through the Logger facade, so the zap call site is noise.
	config.DisableCaller = true
	config.DisableStacktrace = true

	zapLogger, err := config.Build()
	if err != nil {
		return LogFuncs{}, nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	sugar := zapLogger.Sugar()
	flush := func() {
		_ = zapLogger.Sync()
	}

	return LogFuncs{
		Debugf: sugar.Debugf,
		Infof:  sugar.Infof,
		Warnf:  sugar.Warnf,
		Errorf: sugar.Errorf,
	}, flush, nil
}

func parseZapLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return zapLevel, nil
}
