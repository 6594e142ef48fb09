// Package logger provides no-op and test loggers for the balancer library.
package logger

import "github.com/arloliu/balancer/types"

// NopLogger drops every record. It is the balancer's default logger when
// WithLogger is not given, and keeps benchmarks free of formatting cost.
type NopLogger struct{}

var _ types.Logger = (*NopLogger)(nil)

// NewNop returns a logger that discards all messages.
func NewNop() *NopLogger {
	return &NopLogger{}
}

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}

// Fatal discards the message and, unlike a production logger, returns.
func (*NopLogger) Fatal(string, ...any) {}
