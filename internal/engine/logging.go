package engine

import (
	"github.com/sirupsen/logrus"
)

func (e *Engine) logEntry(op, symbol string) *logrus.Entry {
	entry := e.log.WithComponent("engine").WithField("operation", op)
	if symbol != "" {
		entry = entry.WithField("symbol", symbol)
	}
	return entry
}
