package intern

// logger.go wires go.uber.org/zap behind a small sink interface: a nop
// logger by default (WithLogger is the only way to opt in), and the pool
// only ever logs on slow/error paths — allocation failure is the only one,
// since Release never fails and Borrow.Intern's contract violation is
// reported as a panic, not a log line.
//
// © 2025 internmint authors. MIT License.

import "go.uber.org/zap"

// loggerSink is the internal interface abstracting the concrete backend
// (zap vs nop), mirroring metricsSink's split.
type loggerSink interface {
    allocationFailed(err error)
}

type nopLogger struct{}

func (nopLogger) allocationFailed(error) {}

func newNopLogger() loggerSink { return nopLogger{} }

type zapLogger struct {
    l *zap.Logger
}

func (z zapLogger) allocationFailed(err error) {
    z.l.Warn("intern: failed to allocate shared buffer", zap.Error(err))
}
