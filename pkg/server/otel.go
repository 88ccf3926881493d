package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Quiexx/selup-landing-demo/pkg/protocol"
)

const tracerName = "github.com/Quiexx/selup-landing-demo/pkg/server"

// startEventSpan opens a span covering one event dispatch. Without a
// configured tracer provider this is a no-op span.
func startEventSpan(sessionID string, event *protocol.Event) trace.Span {
	tracer := otel.Tracer(tracerName)
	_, span := tracer.Start(context.Background(), "session.dispatch",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("event.type", event.Type.String()),
			attribute.Int64("event.seq", int64(event.Seq)),
		))
	return span
}

func recordPatchCount(span trace.Span, n int) {
	span.SetAttributes(attribute.Int("patches.count", n))
}
