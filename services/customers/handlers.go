package customers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/httpserver"
)

// UseCase is what the HTTP layer needs from the customer ledger.
type UseCase interface {
	Register(ctx context.Context, req RegisterCustomerRequest) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Update(ctx context.Context, customerID int64, update domain.CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, customerID int64) error
	ChargeWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error)
	DeductWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error)
}

// CustomerHandler contains the customer HTTP handlers.
type CustomerHandler struct {
	useCase UseCase
	tracer  trace.Tracer
	respond httpserver.Responder
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(useCase UseCase, tracer trace.Tracer, respond httpserver.Responder) *CustomerHandler {
	return &CustomerHandler{
		useCase: useCase,
		tracer:  tracer,
		respond: respond,
	}
}

// RegisterRoutes mounts the customer endpoints.
func (h *CustomerHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/customers")
	api.POST("", h.Register)
	api.GET("/all", h.List)
	api.GET("/:username", h.GetByUsername)
	api.PUT("/update/:customer_id", h.Update)
	api.DELETE("/delete/:customer_id", h.Delete)
	api.PUT("/charge-wallet/:customer_id", h.ChargeWallet)
	api.PUT("/deduce-wallet/:customer_id", h.DeductWallet)
}

// Register creates a customer.
func (h *CustomerHandler) Register(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "register_customer")
	defer span.End()

	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}
	span.SetAttributes(attribute.String("username", req.Username))

	customer, err := h.useCase.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// List returns all customers.
func (h *CustomerHandler) List(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_customers")
	defer span.End()

	customers, err := h.useCase.List(ctx)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetByUsername returns one customer.
func (h *CustomerHandler) GetByUsername(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_customer")
	defer span.End()

	username := c.Param("username")
	span.SetAttributes(attribute.String("username", username))

	customer, err := h.useCase.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Update changes profile fields.
func (h *CustomerHandler) Update(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "update_customer")
	defer span.End()

	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("customer_id", customerID))

	var update domain.CustomerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}

	customer, err := h.useCase.Update(ctx, customerID, update)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete removes a customer.
func (h *CustomerHandler) Delete(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "delete_customer")
	defer span.End()

	customerID, ok := h.customerID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("customer_id", customerID))

	if err := h.useCase.Delete(ctx, customerID); err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Customer deleted successfully"})
}

// ChargeWallet adds money to a wallet.
func (h *CustomerHandler) ChargeWallet(c *gin.Context) {
	h.walletOperation(c, "charge_wallet", h.useCase.ChargeWallet)
}

// DeductWallet removes money from a wallet.
func (h *CustomerHandler) DeductWallet(c *gin.Context) {
	h.walletOperation(c, "deduct_wallet", h.useCase.DeductWallet)
}

func (h *CustomerHandler) walletOperation(
	c *gin.Context,
	name string,
	op func(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error),
) {
	ctx, span := h.tracer.Start(c.Request.Context(), name)
	defer span.End()

	customerID, ok := h.customerID(c)
	if !ok {
		return
	}

	var req WalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}
	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.String("amount", req.Amount.String()),
	)

	customer, err := op(ctx, customerID, req.Amount)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil || id <= 0 {
		h.respond.Error(c, domain.InvalidInput("customer_id must be a positive integer"))
		return 0, false
	}
	return id, true
}
