// Package tracing records how long operations take as debug log records.
package tracing
