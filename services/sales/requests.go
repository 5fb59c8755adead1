package sales

// MakeSaleRequest is the body of POST /api/sales/make-sale.
type MakeSaleRequest struct {
	CustomerUsername string `json:"customer_username" binding:"required"`
	ItemName         string `json:"item_name" binding:"required"`
}

// MakeSaleResponse is returned once a sale commits.
type MakeSaleResponse struct {
	Status string `json:"status"`
	SaleID int64  `json:"sale_id"`
}

const saleCompletedStatus = "Sale completed successfully"
