package types

// Logger is the structured key/value logger used by the balancer and its
// strategies.
//
// Levels as used by this module:
//   - Debug: per-partition summaries and per-bucket change observations
//   - Info: every published partition (version, bucket count, spread)
//   - Warn: rejected replacements such as a bucket count mismatch
//   - Error: failed repartitions
//
// Any sugared logger (zap, slog adapter) satisfies it. Fatal is never called
// by the library itself.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Fatal(msg string, keysAndValues ...any)
}
