package invoice

import "invoicing/domain/invoice"

func toInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	lines := inv.ProductLines()
	items := make([]ProductLineResponse, len(lines))
	for i, line := range lines {
		items[i] = ProductLineResponse{
			Name:           line.Name(),
			Quantity:       line.Quantity(),
			UnitPrice:      line.Price(),
			TotalUnitPrice: line.Total(),
		}
	}

	return &InvoiceResponse{
		ID:            inv.ID(),
		Status:        inv.Status().String(),
		CustomerName:  inv.CustomerName(),
		CustomerEmail: inv.CustomerEmail(),
		ProductLines:  items,
		TotalPrice:    inv.TotalPrice(),
	}
}
