package tracing

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Tracer starts spans.
type Tracer interface {
	StartSpan(ctx context.Context, operationName string) Span
}

// Span measures one operation. Baggage items are attached to the record
// written by Finish.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = (*LoggingTracer)(nil)
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer writes one debug record per finished span.
type LoggingTracer struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
		now:    time.Now,
	}
}

//nolint:ireturn
func (l *LoggingTracer) StartSpan(ctx context.Context, operationName string) Span {
	return &loggingSpan{
		ctx:           ctx,
		tracer:        l,
		operationName: operationName,
		baggage:       map[string]any{},
		start:         l.now(),
	}
}

type loggingSpan struct {
	ctx           context.Context //nolint:containedctx // Used by Finish.
	start         time.Time
	tracer        *LoggingTracer
	baggage       map[string]any
	operationName string
	mu            sync.Mutex
}

func (s *loggingSpan) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.tracer.now().Sub(s.start)

	attrs := make([]slog.Attr, 0, len(s.baggage)+2)
	attrs = append(attrs,
		slog.String("operation_name", s.operationName),
		slog.Float64("time_ms", float64(elapsed.Microseconds())/1e3),
	)

	keys := make([]string, 0, len(s.baggage))
	for k := range s.baggage {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, s.baggage[k]))
	}

	s.tracer.logger.LogAttrs(s.ctx, slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baggage[key] = value
}
