package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one traced unit of work, such as a CLI command.
type Operation struct {
	Name      string
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// StartOperation starts a span named after the operation.
// If metrics is nil, metric recording is silently skipped.
func StartOperation(ctx context.Context, name string, metrics *Metrics) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, name)
	span.SetAttributes(attribute.String(AttrCommand, name))
	return ctx, &Operation{
		Name:      name,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
}

// End closes the span and records the command metric. A nil err means "ok".
func (op *Operation) End(ctx context.Context, err error) {
	duration := op.Duration()
	status := "ok"
	if err != nil {
		status = "error"
		SetSpanError(trace.ContextWithSpan(ctx, op.span), err)
		op.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	if op.Metrics != nil {
		op.Metrics.RecordCommand(ctx, op.Name, status, duration)
	}
}

// Duration returns the elapsed time since operation start.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
