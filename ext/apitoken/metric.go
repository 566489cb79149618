package apitoken

import (
	"context"

	"github.com/goto/optimus-apitoken/internal/otel"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type fetchMetric struct {
	tokenExchange     metric.Int64Counter
	request           metric.Int64Counter
	requestDurationMs metric.Int64Histogram
	errorCount        metric.Int64Counter
}

func newFetchMetric(component, name string) (*fetchMetric, error) {
	m := otel.GetMeter(component, name)
	fm := &fetchMetric{}

	var err error
	if fm.tokenExchange, err = m.Int64Counter(otel.TokenExchange, metric.WithDescription("The total number of token exchanges"), metric.WithUnit("1")); err != nil {
		return nil, errors.WithStack(err)
	}
	if fm.request, err = m.Int64Counter(otel.Request, metric.WithDescription("The total number of data requests"), metric.WithUnit("1")); err != nil {
		return nil, errors.WithStack(err)
	}
	if fm.requestDurationMs, err = m.Int64Histogram(otel.RequestDuration, metric.WithDescription("The duration of the data request in milliseconds"), metric.WithUnit("ms")); err != nil {
		return nil, errors.WithStack(err)
	}
	if fm.errorCount, err = m.Int64Counter(otel.Error, metric.WithDescription("The total number of failed fetches"), metric.WithUnit("1")); err != nil {
		return nil, errors.WithStack(err)
	}
	return fm, nil
}

func (fm *fetchMetric) recordTokenExchange(ctx context.Context) {
	fm.tokenExchange.Add(ctx, 1)
}

func (fm *fetchMetric) recordRequest(ctx context.Context, method string, statusCode int, durationMs int64) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status_code", statusCode),
	)
	fm.request.Add(ctx, 1, attrs)
	fm.requestDurationMs.Record(ctx, durationMs, attrs)
}

func (fm *fetchMetric) recordError(ctx context.Context, step string, kind ErrorKind, reason string) {
	fm.errorCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("kind", kind.String()),
		attribute.String("reason", reason),
	))
}
