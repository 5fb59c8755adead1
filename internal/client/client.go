// Package client is a typed HTTP client for the customers, inventory and sales
// services.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/logger"
	"github.com/MariamAbbas03/Project435/services/customers"
	"github.com/MariamAbbas03/Project435/services/inventory"
	"github.com/MariamAbbas03/Project435/services/sales"
)

// Options points the client at the three services.
type Options struct {
	CustomersURL string
	InventoryURL string
	SalesURL     string
	Timeout      time.Duration
}

// Client calls the shop services over HTTP.
type Client struct {
	customers *resty.Client
	inventory *resty.Client
	sales     *resty.Client
}

// New creates a Client. A zero Timeout means 10 seconds.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	newRC := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(opts.Timeout).
			SetHeader("Content-Type", "application/json")
	}
	return &Client{
		customers: newRC(opts.CustomersURL),
		inventory: newRC(opts.InventoryURL),
		sales:     newRC(opts.SalesURL),
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// APIError is an error answered by a service. It unwraps to the matching
// domain error so callers can use errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// messageKinds lists error messages the services write, specific ones before
// the kinds they wrap. A message matches exactly or as "<message>: detail".
var messageKinds = []struct {
	message string
	err     error
}{
	{domain.ErrMsgCustomerNotFound, domain.ErrCustomerNotFound},
	{domain.ErrMsgItemNotFound, domain.ErrItemNotFound},
	{domain.ErrMsgUsernameTaken, domain.ErrUsernameTaken},
	{domain.ErrMsgInsufficientFunds, domain.ErrInsufficientFunds},
	{domain.ErrMsgOutOfStock, domain.ErrOutOfStock},
	{domain.ErrMsgInvalidInput, domain.ErrInvalidInput},
	{domain.ErrMsgNotFound, domain.ErrNotFound},
	{domain.ErrMsgConflict, domain.ErrConflict},
}

func (e *APIError) Unwrap() error {
	for _, k := range messageKinds {
		if e.Message == k.message || strings.HasPrefix(e.Message, k.message+": ") {
			return k.err
		}
	}

	switch e.StatusCode {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrStore
	}
}

func request(ctx context.Context, rc *resty.Client) *resty.Request {
	req := rc.R().SetContext(ctx)
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		req.SetHeader("X-Request-ID", id)
	}
	return req
}

// do sends req and decodes a successful body into out. Services running with
// legacy status codes answer errors with 200, so a 2xx body carrying an
// "error" field is an error too.
func do(req *resty.Request, method, path string, out any) error {
	var apiErr errorBody
	req.SetError(&apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}

	body := resp.Body()
	var legacy errorBody
	if json.Unmarshal(body, &legacy) == nil && legacy.Error != "" {
		return &APIError{StatusCode: resp.StatusCode(), Message: legacy.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// RegisterCustomer creates a customer.
func (c *Client) RegisterCustomer(ctx context.Context, req customers.RegisterCustomerRequest) (*domain.Customer, error) {
	var out domain.Customer
	if err := do(request(ctx, c.customers).SetBody(req), http.MethodPost, "/api/customers", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomers returns every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := do(request(ctx, c.customers), http.MethodGet, "/api/customers/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomer looks a customer up by username.
func (c *Client) GetCustomer(ctx context.Context, username string) (*domain.Customer, error) {
	var out domain.Customer
	req := request(ctx, c.customers).SetPathParam("username", username)
	if err := do(req, http.MethodGet, "/api/customers/{username}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer changes profile fields.
func (c *Client) UpdateCustomer(ctx context.Context, customerID int64, update domain.CustomerUpdate) (*domain.Customer, error) {
	var out domain.Customer
	req := request(ctx, c.customers).SetPathParam("customer_id", id(customerID)).SetBody(update)
	if err := do(req, http.MethodPut, "/api/customers/update/{customer_id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, customerID int64) error {
	req := request(ctx, c.customers).SetPathParam("customer_id", id(customerID))
	return do(req, http.MethodDelete, "/api/customers/delete/{customer_id}", nil)
}

// ChargeWallet tops up a wallet.
func (c *Client) ChargeWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	return c.wallet(ctx, "/api/customers/charge-wallet/{customer_id}", customerID, amount)
}

// DeductWallet takes money out of a wallet.
func (c *Client) DeductWallet(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	return c.wallet(ctx, "/api/customers/deduce-wallet/{customer_id}", customerID, amount)
}

func (c *Client) wallet(ctx context.Context, path string, customerID int64, amount decimal.Decimal) (*domain.Customer, error) {
	var out domain.Customer
	req := request(ctx, c.customers).
		SetPathParam("customer_id", id(customerID)).
		SetBody(customers.WalletRequest{Amount: amount})
	if err := do(req, http.MethodPut, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem stocks a new item.
func (c *Client) AddItem(ctx context.Context, req inventory.AddItemRequest) (*domain.Item, error) {
	var out domain.Item
	if err := do(request(ctx, c.inventory).SetBody(req), http.MethodPost, "/api/inventory", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItems returns every item.
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	var out []domain.Item
	if err := do(request(ctx, c.inventory), http.MethodGet, "/api/inventory/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem looks an item up by id.
func (c *Client) GetItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	var out domain.Item
	req := request(ctx, c.inventory).SetPathParam("item_id", id(itemID))
	if err := do(req, http.MethodGet, "/api/inventory/{item_id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem changes item fields.
func (c *Client) UpdateItem(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error) {
	var out domain.Item
	req := request(ctx, c.inventory).SetPathParam("item_id", id(itemID)).SetBody(update)
	if err := do(req, http.MethodPut, "/api/inventory/update/{item_id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeductStock removes units from stock.
func (c *Client) DeductStock(ctx context.Context, itemID int64, quantity int) (*domain.Item, error) {
	var out domain.Item
	req := request(ctx, c.inventory).
		SetPathParam("item_id", id(itemID)).
		SetBody(inventory.DeductStockRequest{Quantity: quantity})
	if err := do(req, http.MethodPut, "/api/inventory/deduce-stock/{item_id}", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MakeSale sells one unit of itemName to username and returns the sale id.
func (c *Client) MakeSale(ctx context.Context, username, itemName string) (int64, error) {
	var out sales.MakeSaleResponse
	req := request(ctx, c.sales).SetBody(sales.MakeSaleRequest{
		CustomerUsername: username,
		ItemName:         itemName,
	})
	if err := do(req, http.MethodPost, "/api/sales/make-sale", &out); err != nil {
		return 0, err
	}
	return out.SaleID, nil
}

// CustomerSales returns a customer's sales history.
func (c *Client) CustomerSales(ctx context.Context, username string) ([]domain.SaleSummary, error) {
	var out []domain.SaleSummary
	req := request(ctx, c.sales).SetPathParam("customer_username", username)
	if err := do(req, http.MethodGet, "/api/sales/customer/{customer_username}", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health checks /health on every service.
func (c *Client) Health(ctx context.Context) error {
	for _, rc := range []*resty.Client{c.customers, c.inventory, c.sales} {
		if err := do(request(ctx, rc), http.MethodGet, "/health", nil); err != nil {
			return fmt.Errorf("%s: %w", rc.BaseURL, err)
		}
	}
	return nil
}
