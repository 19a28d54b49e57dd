package review

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("linthound.review") //nolint:gochecknoglobals
	meter  = otel.Meter("linthound.review")  //nolint:gochecknoglobals
)

var ( //nolint:gochecknoglobals
	checkLatency    metric.Float64Histogram
	filesChecked    metric.Int64Counter
	filesFailed     metric.Int64Counter
	violationsFound metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics is safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		checkLatency, err = meter.Float64Histogram(
			"review_check_duration_seconds",
			metric.WithDescription("Duration of review passes"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesChecked, err = meter.Int64Counter(
			"review_files_checked_total",
			metric.WithDescription("Total number of files handed to a review pass"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesFailed, err = meter.Int64Counter(
			"review_files_failed_total",
			metric.WithDescription("Total number of files the rule engine couldn't analyze"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		violationsFound, err = meter.Int64Counter(
			"review_line_violations_total",
			metric.WithDescription("Total number of reported line violations"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startCheckSpan(ctx context.Context, files int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Checker.Check",
		trace.WithAttributes(
			attribute.Int("review.file_count", files),
		),
	)
}

func setCheckSpanResult(span trace.Span, result *Result) {
	span.SetAttributes(
		attribute.Int("review.violation_file_count", len(result.Violations)),
		attribute.Int("review.failure_count", len(result.Failures)),
		attribute.Int("review.warning_count", len(result.Warnings)),
	)
}

func recordFileFailure(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	filesFailed.Add(ctx, 1)
}

func recordCheckMetrics(ctx context.Context, files int, duration time.Duration, result *Result) {
	if err := initMetrics(); err != nil {
		return
	}
	lines := 0
	for _, v := range result.Violations {
		lines += len(v.LineViolations)
	}
	attrs := metric.WithAttributes(
		attribute.Bool("partial", result.Partial()),
	)
	checkLatency.Record(ctx, duration.Seconds(), attrs)
	filesChecked.Add(ctx, int64(files), attrs)
	violationsFound.Add(ctx, int64(lines), attrs)
}
