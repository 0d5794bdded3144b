package escrow

import (
	"github.com/vitwit/escrow/logger"
	"github.com/vitwit/escrow/metrics"
)

type Option func(*Engine)

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}
