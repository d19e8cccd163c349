package logging

import (
	"github.com/sirupsen/logrus"

	"campaign_go/pkg/config"
)

// Logger: экземпляр логгера, который передаётся в хранилище, обработчики и сервисы
type Logger = *logrus.Logger

// NewLogger создаёт логгер с JSON-форматом и уровнем из LOG_LEVEL
func NewLogger() Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// Component возвращает запись с полем component — аналог префиксов [DB], [HANDLER], [ROUTER].
// Для nil-логгера используется стандартный логгер logrus.
func Component(logger Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithField("component", name)
}
