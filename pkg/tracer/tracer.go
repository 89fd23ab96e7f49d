package tracer

import (
    "context"

    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
    "go.opentelemetry.io/otel/sdk/resource"
    sdktrace "go.opentelemetry.io/otel/sdk/trace"
    semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

    "github.com/d60-Lab/party-feed/config"
)

// Init 初始化 OTLP HTTP 导出的全局 TracerProvider，返回关停函数
func Init(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
    if !cfg.Trace.Enabled {
        return func(context.Context) error { return nil }, nil
    }
    exporter, err := otlptracehttp.New(ctx,
        otlptracehttp.WithEndpoint(cfg.Trace.Endpoint),
        otlptracehttp.WithInsecure(),
    )
    if err != nil {
        return nil, err
    }
    res, err := resource.New(ctx,
        resource.WithAttributes(semconv.ServiceName("party-feed")),
    )
    if err != nil {
        return nil, err
    }
    tp := sdktrace.NewTracerProvider(
        sdktrace.WithBatcher(exporter),
        sdktrace.WithResource(res),
    )
    otel.SetTracerProvider(tp)
    return tp.Shutdown, nil
}
