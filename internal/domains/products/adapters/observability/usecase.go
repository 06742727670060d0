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

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

const tracerName = "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/observability/usecase"

// UseCase decorates the product workflows with tracing, logging, and metrics.
// Stock commands stay fire-and-forget: their outcome is observed on a
// separate goroutine and never delays the caller.
type UseCase struct {
	inner   productports.UseCase
	tracer  trace.Tracer
	logger  *slog.Logger
	meter   metric.Meter
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
		u.meter = m
		u.metrics = newUseCaseMetrics(m)
	}
}

// New wraps the core product use case.
func New(inner productports.UseCase, opts ...Option) productports.UseCase {
	return newUseCase(inner, opts...)
}

func newUseCase(inner productports.UseCase, opts ...Option) *UseCase {
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

func (u *UseCase) FindProduct(ctx context.Context, name string) (*productdomain.Product, error) {
	ctx, span := u.tracer.Start(ctx, "ProductUseCase.FindProduct", trace.WithAttributes(attribute.String("product.name", name)))
	defer span.End()

	u.logInfo(ctx, "loading product", slog.String("product.name", name))
	result, err := u.inner.FindProduct(ctx, name)
	if err != nil {
		return nil, u.handleError(ctx, span, err, "failed to load product", slog.String("product.name", name))
	}
	span.SetAttributes(attribute.Int64("product.id", result.ID))
	u.logInfo(ctx, "product loaded", slog.Int64("product.id", result.ID), slog.Int64("product.quantity", result.Quantity))
	return result, nil
}

func (u *UseCase) IncrementProductInStock(ctx context.Context, product productdomain.Product) *async.Task {
	return u.dispatch(ctx, productdomain.StockIncrement, product, u.inner.IncrementProductInStock)
}

func (u *UseCase) DecrementProductInStock(ctx context.Context, product productdomain.Product) *async.Task {
	return u.dispatch(ctx, productdomain.StockDecrement, product, u.inner.DecrementProductInStock)
}

func (u *UseCase) dispatch(
	ctx context.Context,
	event productdomain.StockEventType,
	product productdomain.Product,
	run func(context.Context, productdomain.Product) *async.Task,
) *async.Task {
	ctx, span := u.tracer.Start(ctx, "ProductUseCase.UpdateProductInStock",
		trace.WithAttributes(attribute.String("product.name", product.Name), attribute.String("stock.event", string(event))))
	defer span.End()

	attrs := []slog.Attr{
		slog.String("product.name", product.Name),
		slog.String("stock.event", string(event)),
		slog.Int64("stock.amount", productdomain.StockCommand{Product: product, Event: event}.Amount()),
	}
	u.logInfo(ctx, "stock update dispatched", attrs...)
	task := run(ctx, product)

	watchCtx := context.WithoutCancel(ctx)
	go func() {
		<-task.Done()
		if err := task.Err(); err != nil {
			u.metrics.recordStockUpdate(watchCtx, event, "failed")
			u.logError(watchCtx, "stock update failed", err, append(attrs, slog.String("error.kind", apperror.KindOf(err).String()))...)
			return
		}
		u.metrics.recordStockUpdate(watchCtx, event, "applied")
	}()
	return task
}

func (u *UseCase) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if u.logger == nil {
		return
	}
	u.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (u *UseCase) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if u.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	u.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (u *UseCase) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if apperror.KindOf(err) != apperror.KindUnexpected {
		level = slog.LevelWarn
	}
	if u.logger != nil {
		u.logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	}
	return err
}

type useCaseMetrics struct {
	stockUpdates metric.Int64Counter
}

func newUseCaseMetrics(m metric.Meter) useCaseMetrics {
	if m == nil {
		return useCaseMetrics{}
	}
	stockUpdates, _ := m.Int64Counter("products.usecase.stock_updates", metric.WithDescription("Number of stock updates by outcome"))
	return useCaseMetrics{stockUpdates: stockUpdates}
}

func (m useCaseMetrics) recordStockUpdate(ctx context.Context, event productdomain.StockEventType, outcome string) {
	if m.stockUpdates != nil {
		m.stockUpdates.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stock.event", string(event)),
			attribute.String("outcome", outcome),
		))
	}
}

var _ productports.UseCase = (*UseCase)(nil)
