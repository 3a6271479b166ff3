package telemetry

import (
	"context"
	"fmt"

	"github.com/alexanderramin/basekit/internal/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName scopes the tracer used for use-case spans.
const InstrumentationName = "github.com/alexanderramin/basekit/internal/service"

type spanObserver struct {
	tracer trace.Tracer
}

// NewSpanObserver records one span per service use case, named after the
// use case and timed from its start to its end.
func NewSpanObserver(tp trace.TracerProvider) service.UseCaseObserver {
	return &spanObserver{tracer: tp.Tracer(InstrumentationName)}
}

func (o *spanObserver) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	_, span := o.tracer.Start(ctx, event.Name,
		trace.WithTimestamp(event.StartedAt),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	attrs := make([]attribute.KeyValue, 0, len(event.Fields)+1)
	attrs = append(attrs, attribute.Bool("use_case.success", event.Success))
	for k, v := range event.Fields {
		attrs = append(attrs, fieldAttr(k, v))
	}
	span.SetAttributes(attrs...)

	if event.Err != nil {
		span.RecordError(event.Err)
		span.SetStatus(codes.Error, event.Err.Error())
	}
	span.End(trace.WithTimestamp(event.StartedAt.Add(event.Duration)))
}

func fieldAttr(key string, v any) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case bool:
		return attribute.Bool(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}
