package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

// Service decorates the product service used by order placement. Stock
// commands issued there are watched like the use case ones.
type Service struct {
	inner    productports.Service
	obs      *UseCase
	commands metric.Int64Counter
}

// NewService wraps the product service with the same options as New.
func NewService(inner productports.Service, opts ...Option) productports.Service {
	obs := newUseCase(nil, opts...)
	s := &Service{inner: inner, obs: obs}
	if obs.meter != nil {
		s.commands, _ = obs.meter.Int64Counter("products.service.stock_commands", metric.WithDescription("Stock commands issued by order placement, by outcome"))
	}
	return s
}

func (s *Service) CheckIsAvailableProducts(ctx context.Context, items []productdomain.Item) ([]*productdomain.Product, error) {
	ctx, span := s.obs.tracer.Start(ctx, "ProductService.CheckIsAvailableProducts", trace.WithAttributes(attribute.Int("items.count", len(items))))
	defer span.End()

	available, err := s.inner.CheckIsAvailableProducts(ctx, items)
	if err != nil {
		return nil, s.obs.handleError(ctx, span, err, "availability check failed", slog.Int("items.count", len(items)))
	}
	span.SetAttributes(attribute.Int("items.available", len(available)))
	s.obs.logInfo(ctx, "availability checked", slog.Int("items.count", len(items)), slog.Int("items.available", len(available)))
	return available, nil
}

func (s *Service) FindProduct(ctx context.Context, name string) (*productdomain.Product, error) {
	ctx, span := s.obs.tracer.Start(ctx, "ProductService.FindProduct", trace.WithAttributes(attribute.String("product.name", name)))
	defer span.End()

	product, err := s.inner.FindProduct(ctx, name)
	if err != nil {
		return nil, s.obs.handleError(ctx, span, err, "product lookup failed", slog.String("product.name", name))
	}
	return product, nil
}

func (s *Service) UpdateProductInStock(ctx context.Context, cmd productdomain.StockCommand) *async.Task {
	ctx, span := s.obs.tracer.Start(ctx, "ProductService.UpdateProductInStock",
		trace.WithAttributes(attribute.String("product.name", cmd.Product.Name), attribute.String("stock.event", string(cmd.Event))))
	defer span.End()

	attrs := []slog.Attr{
		slog.String("product.name", cmd.Product.Name),
		slog.String("stock.event", string(cmd.Event)),
		slog.Int64("stock.amount", cmd.Amount()),
	}
	task := s.inner.UpdateProductInStock(ctx, cmd)

	watchCtx := context.WithoutCancel(ctx)
	go func() {
		<-task.Done()
		outcome := "applied"
		if err := task.Err(); err != nil {
			outcome = "failed"
			s.obs.logError(watchCtx, "stock command failed", err, append(attrs, slog.String("error.kind", apperror.KindOf(err).String()))...)
		}
		if s.commands != nil {
			s.commands.Add(watchCtx, 1, metric.WithAttributes(
				attribute.String("stock.event", string(cmd.Event)),
				attribute.String("outcome", outcome),
			))
		}
	}()
	return task
}

var _ productports.Service = (*Service)(nil)
