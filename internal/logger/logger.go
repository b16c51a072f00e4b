package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Development mode gives colored console
// output at debug level; anything else gives production JSON.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Nop returns a logger that discards everything. Used by tests and tools
// that do not care about log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
