package orderserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/http/mapper"
	orderworkflows "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/workflows"
	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry POST /orders without placing twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders use case and placement workflows.
type OrderAPI struct {
	orders    orderports.UseCase
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil orchestrator places orders inline.
func NewOrderAPI(orders orderports.UseCase, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{orders: orders, workflows: workflows}
}

// Post /orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := orderhttpmapper.ToDomainOrder(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ctx := orderworkflows.WithIdempotencyKey(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader))
	created, err := api.placeOrder(ctx, order)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(created))
}

func (api *OrderAPI) placeOrder(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, order)
	}
	return api.orders.CreateNewOrder(ctx, order)
}

// Get /orders
// Lists orders, optionally only those containing ?product=<name>
func (api *OrderAPI) FindOrders(c *gin.Context) {
	filter := orderdomain.Filter{ProductName: strings.TrimSpace(c.Query("product"))}
	orders, err := api.orders.FindOrder(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	orders, err := api.orders.FindOrder(c.Request.Context(), orderdomain.Filter{ID: &id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(orders[0]))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, errInvalidID(name, value))
		return 0, false
	}
	return id, true
}
