// Package telemetry sets up OpenTelemetry tracing and metrics for the
// assistant. Traces and metrics are exported as JSON into rotated files so
// they can be inspected without running a collector.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const instrumentationName = "github.com/vbonduro/smartbite"

// Telemetry bundles the tracer and counters used by the chat orchestrator.
type Telemetry struct {
	Tracer      trace.Tracer
	Sessions    metric.Int64Counter
	Detections  metric.Int64Counter
	Generations metric.Int64Counter
}

// Noop returns a Telemetry whose tracer and counters discard everything.
func Noop() *Telemetry {
	t, err := newTelemetry(tracenoop.NewTracerProvider().Tracer(instrumentationName), metricnoop.NewMeterProvider().Meter(instrumentationName))
	if err != nil {
		// noop instruments never fail to register
		panic(err)
	}
	return t
}

func newTelemetry(tracer trace.Tracer, meter metric.Meter) (*Telemetry, error) {
	sessions, err := meter.Int64Counter("smartbite.sessions",
		metric.WithDescription("Chat sessions started"))
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions counter: %w", err)
	}
	detections, err := meter.Int64Counter("smartbite.detections",
		metric.WithDescription("Ingredient detection calls"))
	if err != nil {
		return nil, fmt.Errorf("failed to create detections counter: %w", err)
	}
	generations, err := meter.Int64Counter("smartbite.generations",
		metric.WithDescription("Recipe generation calls by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generations counter: %w", err)
	}
	return &Telemetry{
		Tracer:      tracer,
		Sessions:    sessions,
		Detections:  detections,
		Generations: generations,
	}, nil
}

// Outcome is the attribute attached to detection and generation counters.
func Outcome(err error) metric.AddOption {
	if err != nil {
		return metric.WithAttributes(attribute.String("outcome", "error"))
	}
	return metric.WithAttributes(attribute.String("outcome", "ok"))
}

// New exports traces and metrics into dir. The returned cleanup flushes the
// exporters and closes the files; callers must defer it.
func New(ctx context.Context, dir, version string) (*Telemetry, func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("smartbite"),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	traceFile := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "smartbite_traces.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricsFile := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "smartbite_metrics.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(30*time.Second),
		)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	t, err := newTelemetry(tp.Tracer(instrumentationName), mp.Meter(instrumentationName))
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown tracer provider", "error", err)
		}
		if err := mp.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown meter provider", "error", err)
		}
		if err := traceFile.Close(); err != nil {
			slog.Error("failed to close trace file", "error", err)
		}
		if err := metricsFile.Close(); err != nil {
			slog.Error("failed to close metrics file", "error", err)
		}
	}

	return t, cleanup, nil
}
