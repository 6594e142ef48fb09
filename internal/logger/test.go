package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/balancer/types"
)

// TestLogger routes records through t.Logf so balancer output is attributed
// to the test that produced it.
//
// Example:
//
//	b, err := balancer.New(&cfg, items, balancer.WithLogger(logger.NewTest(t)))
type TestLogger struct {
	t testing.TB
}

var _ types.Logger = (*TestLogger)(nil)

// NewTest returns a logger bound to t.
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.log("DEBUG", msg, keysAndValues)
}

func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.log("INFO", msg, keysAndValues)
}

func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.log("WARN", msg, keysAndValues)
}

func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.log("ERROR", msg, keysAndValues)
}

// Fatal fails the test immediately.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s%s", msg, formatKeyValues(keysAndValues))
}

func (l *TestLogger) log(level, msg string, keysAndValues []any) {
	l.t.Helper()
	l.t.Logf("%s: %s%s", level, msg, formatKeyValues(keysAndValues))
}

// formatKeyValues renders pairs as " k1=v1 k2=v2"; a dangling key gets "<missing>".
func formatKeyValues(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&sb, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&sb, " %v=<missing>", keysAndValues[i])
		}
	}

	return sb.String()
}
