// Package observer provides OTEL-based observability for Bot API traffic.
//
// It wraps a tgbot.Transport and a tgbot.Handler with instrumented versions
// that emit traces, metrics, and logs via OpenTelemetry. Exporters are
// configured with the standard OTEL env vars.
package observer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/nevindra/tgbot/observer"

// Instruments holds the OTEL instruments used by the observer wrappers.
type Instruments struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger otellog.Logger

	APIRequests    metric.Int64Counter
	APIDuration    metric.Float64Histogram
	ResultBytes    metric.Int64Counter
	Updates        metric.Int64Counter
	UpdateDuration metric.Float64Histogram
}

// Init sets up OTEL trace, metric, and log providers with OTLP HTTP
// exporters and registers them globally. The returned shutdown function
// flushes and stops all three and must be called on exit.
func Init(ctx context.Context, serviceName string) (*Instruments, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, nil, err
	}

	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logExp, err := otlploghttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	inst, err := NewInstruments(tp, mp, lp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = lp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}
	return inst, shutdown, nil
}

// NewInstruments creates the instruments from explicit providers.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider, lp otellog.LoggerProvider) (*Instruments, error) {
	meter := mp.Meter(scopeName)

	apiRequests, err := meter.Int64Counter("tgbot.api.requests",
		metric.WithDescription("Bot API request count"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	apiDuration, err := meter.Float64Histogram("tgbot.api.duration",
		metric.WithDescription("Bot API call duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	resultBytes, err := meter.Int64Counter("tgbot.api.result_bytes",
		metric.WithDescription("Size of decoded Bot API results"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	updates, err := meter.Int64Counter("tgbot.updates",
		metric.WithDescription("Handled update count"),
		metric.WithUnit("{update}"))
	if err != nil {
		return nil, err
	}

	updateDuration, err := meter.Float64Histogram("tgbot.update.duration",
		metric.WithDescription("Update handler duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:         tp.Tracer(scopeName),
		Meter:          meter,
		Logger:         lp.Logger(scopeName),
		APIRequests:    apiRequests,
		APIDuration:    apiDuration,
		ResultBytes:    resultBytes,
		Updates:        updates,
		UpdateDuration: updateDuration,
	}, nil
}
