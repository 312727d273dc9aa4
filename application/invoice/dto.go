package invoice

// CreateInvoiceRequest create invoice input.
// Quantity and price are not range checked; a draft may hold lines that are
// only rejected when the invoice is sent.
type CreateInvoiceRequest struct {
	CustomerName  string                     `json:"customer_name" binding:"required"`
	CustomerEmail string                     `json:"customer_email" binding:"required,email"`
	ProductLines  []CreateProductLineRequest `json:"product_lines" binding:"dive"`
}

// CreateProductLineRequest a single line of CreateInvoiceRequest
type CreateProductLineRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// InvoiceResponse invoice representation returned by every use case
type InvoiceResponse struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	ProductLines  []ProductLineResponse `json:"product_lines"`
	TotalPrice    int64                 `json:"total_price"`
}

// ProductLineResponse line representation
type ProductLineResponse struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	TotalUnitPrice int64  `json:"total_unit_price"`
}
