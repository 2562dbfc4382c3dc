// Package telemetry otel 链路追踪与 sentry 上报初始化
package telemetry

import (
    "context"
    "fmt"
    "time"

    "github.com/getsentry/sentry-go"
    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/exporters/otlp/otlptrace"
    "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
    sdkresource "go.opentelemetry.io/otel/sdk/resource"
    sdktrace "go.opentelemetry.io/otel/sdk/trace"
    semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

    "github.com/d60-Lab/pressroom/internal/config"
)

// Init 初始化 tracer provider 与 sentry；返回关停函数。
// Enabled 为 false 时什么都不做
func Init(ctx context.Context, cfg config.Telemetry) (func(context.Context) error, error) {
    noop := func(context.Context) error { return nil }
    if !cfg.Enabled {
        return noop, nil
    }

    if cfg.SentryDSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
            return noop, fmt.Errorf("init sentry: %w", err)
        }
    }

    exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(
        otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
        otlptracehttp.WithInsecure(),
    ))
    if err != nil {
        return noop, fmt.Errorf("init otlp exporter: %w", err)
    }
    res, err := sdkresource.New(ctx,
        sdkresource.WithAttributes(semconv.ServiceName("pressroom")),
    )
    if err != nil {
        return noop, fmt.Errorf("build resource: %w", err)
    }
    tp := sdktrace.NewTracerProvider(
        sdktrace.WithBatcher(exporter),
        sdktrace.WithResource(res),
    )
    otel.SetTracerProvider(tp)

    return func(ctx context.Context) error {
        sentry.Flush(2 * time.Second)
        return tp.Shutdown(ctx)
    }, nil
}
