package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = mustBuild(zapcore.WarnLevel)

// L returns the process-wide logger. Warnings and above are visible by
// default; Init(true) lowers the threshold to debug.
func L() *zap.Logger {
	return log
}

func Init(debug bool) {
	if debug {
		log = mustBuild(zapcore.DebugLevel)
	}
}

func mustBuild(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}
