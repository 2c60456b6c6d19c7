// Package pkg provides shared utilities for the usbrom descriptor compiler.
//
// This package contains functionality used by every compiler stage:
//
//   - Structured logging via Go's standard [log/slog] package
//   - The compile error taxonomy and its sentinel values
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with a component attribute:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentAssembler, "image assembled", "size", 73)
//
// # Errors
//
// Every compile failure is an [*Error] carrying its kind, the option it
// concerns and the configuration position it was found at. Callers match
// the kind with [errors.Is]:
//
//	if errors.Is(err, pkg.ErrRange) {
//	    // a field value does not fit its descriptor field
//	}
package pkg
