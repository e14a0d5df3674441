package executors

// Logger is the diagnostic sink an Executor may be given via WithLogger.
// It is never required: task errors are never routed through it, only
// observed by the caller through GetError/Get, per the package's
// unspecified-tracing design. The shape mirrors the small Debugf/Errorf
// interface this corpus favors for optional, injectable loggers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{}) {}
