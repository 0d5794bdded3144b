package metrics

import "time"

// NoopRecorder discards every measurement. It is the default when the
// engine is built without metrics enabled.
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
