package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

const tracerName = "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/observability/usecase"

// UseCase decorates order placement with tracing, logging, and metrics.
type UseCase struct {
	inner   orderports.UseCase
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics useCaseMetrics
}

type Option func(*UseCase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *UseCase) {
		u.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(u *UseCase) {
		u.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(u *UseCase) {
		u.metrics = newUseCaseMetrics(m)
	}
}

// New wraps the core order use case.
func New(inner orderports.UseCase, opts ...Option) orderports.UseCase {
	u := &UseCase{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newUseCaseMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}
	if u.tracer == nil {
		u.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return u
}

func (u *UseCase) FindOrder(ctx context.Context, filter orderdomain.Filter) ([]*orderdomain.Order, error) {
	attrs := filterAttrs(filter)
	ctx, span := u.tracer.Start(ctx, "OrderUseCase.FindOrder", trace.WithAttributes(toSpanAttrs(attrs)...))
	defer span.End()

	u.logInfo(ctx, "finding orders", attrs...)
	result, err := u.inner.FindOrder(ctx, filter)
	if err != nil {
		return nil, u.handleError(ctx, span, err, "failed to find orders", attrs...)
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	u.logInfo(ctx, "orders found", append(attrs, slog.Int("orders.count", len(result)))...)
	return result, nil
}

func (u *UseCase) CreateNewOrder(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	lineItems := 0
	if order != nil {
		lineItems = len(order.Products)
	}
	ctx, span := u.tracer.Start(ctx, "OrderUseCase.CreateNewOrder", trace.WithAttributes(attribute.Int("order.line_items", lineItems)))
	defer span.End()

	u.logInfo(ctx, "placing order", slog.Int("order.line_items", lineItems))
	result, err := u.inner.CreateNewOrder(ctx, order)
	if err != nil {
		u.metrics.recordRejected(ctx, apperror.CodeOf(err))
		return nil, u.handleError(ctx, span, err, "failed to place order", slog.Int("order.line_items", lineItems))
	}
	u.metrics.recordPlaced(ctx, result)
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.String("order.total", result.Total.StringFixed(2)))
	u.logInfo(ctx, "order placed", slog.Int64("order.id", result.ID), slog.String("order.total", result.Total.StringFixed(2)))
	return result, nil
}

func (u *UseCase) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if u.logger == nil {
		return
	}
	u.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError logs client-visible rejections at warn and faults at error.
func (u *UseCase) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if u.logger == nil {
		return err
	}
	level := slog.LevelError
	if apperror.KindOf(err) != apperror.KindUnexpected {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()), slog.String("error.code", string(apperror.CodeOf(err))))
	u.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func filterAttrs(filter orderdomain.Filter) []slog.Attr {
	var attrs []slog.Attr
	if filter.ID != nil {
		attrs = append(attrs, slog.Int64("order.id", *filter.ID))
	}
	if filter.Total != nil {
		attrs = append(attrs, slog.String("order.total", filter.Total.StringFixed(2)))
	}
	if filter.ProductName != "" {
		attrs = append(attrs, slog.String("product.name", filter.ProductName))
	}
	return attrs
}

func toSpanAttrs(attrs []slog.Attr) []attribute.KeyValue {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		kv = append(kv, attribute.String(a.Key, a.Value.String()))
	}
	return kv
}

type useCaseMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	orderTotal     metric.Float64Histogram
}

func newUseCaseMetrics(m metric.Meter) useCaseMetrics {
	if m == nil {
		return useCaseMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.usecase.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.usecase.orders_rejected", metric.WithDescription("Number of order placements rejected"))
	orderTotal, _ := m.Float64Histogram("orders.usecase.order_total", metric.WithDescription("Order totals"))
	return useCaseMetrics{ordersPlaced: ordersPlaced, ordersRejected: ordersRejected, orderTotal: orderTotal}
}

func (m useCaseMetrics) recordPlaced(ctx context.Context, order *orderdomain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.orderTotal != nil && order != nil {
		m.orderTotal.Record(ctx, order.Total.InexactFloat64())
	}
}

func (m useCaseMetrics) recordRejected(ctx context.Context, code apperror.Code) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("error.code", string(code))))
	}
}

var _ orderports.UseCase = (*UseCase)(nil)
