package sales

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/httpserver"
)

// UseCase is what the HTTP layer needs from the sales engine.
type UseCase interface {
	MakeSale(ctx context.Context, req MakeSaleRequest) (*domain.SaleRecord, error)
	GetCustomerSalesByUsername(ctx context.Context, username string) ([]domain.SaleSummary, error)
}

// SaleHandler contains the sales HTTP handlers.
type SaleHandler struct {
	useCase UseCase
	respond httpserver.Responder
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(useCase UseCase, respond httpserver.Responder) *SaleHandler {
	return &SaleHandler{
		useCase: useCase,
		respond: respond,
	}
}

// RegisterRoutes mounts the sales endpoints.
func (h *SaleHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/sales")
	api.POST("/make-sale", h.MakeSale)
	api.GET("/customer/:customer_username", h.GetCustomerSales)
}

// MakeSale sells one unit of an item to a customer.
func (h *SaleHandler) MakeSale(c *gin.Context) {
	var req MakeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond.BadRequest(c, err)
		return
	}

	sale, err := h.useCase.MakeSale(c.Request.Context(), req)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MakeSaleResponse{
		Status: saleCompletedStatus,
		SaleID: sale.ID,
	})
}

// GetCustomerSales returns a customer's sales history.
func (h *SaleHandler) GetCustomerSales(c *gin.Context) {
	summaries, err := h.useCase.GetCustomerSalesByUsername(c.Request.Context(), c.Param("customer_username"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}
