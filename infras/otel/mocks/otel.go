// Package mocks provides an Otel backed by a no-op tracer so services can be
// tested without an exporter.
package mocks

import (
	"context"

	"daybooker/infras/otel"

	"go.opentelemetry.io/otel/trace/noop"
)

type noopOtel struct {
	provider noop.TracerProvider
}

func (o noopOtel) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func NewOtel() otel.Otel {
	return noopOtel{provider: noop.NewTracerProvider()}
}
