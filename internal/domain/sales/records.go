package sales

import "github.com/jhoicas/tienda-admin-api/internal/domain/entity"

// Records aplana las órdenes en una fila por línea para las exportaciones (CSV, PDF).
// Las referencias no resueltas se muestran con placeholders y precio 0.
func Records(orders []entity.Order) []entity.SalesRecord {
	var out []entity.SalesRecord
	for _, o := range orders {
		customer, email := UnknownCustomer, ""
		if o.User != nil {
			customer, email = o.User.FullName(), o.User.Email
		}
		for _, l := range o.Lines {
			rec := entity.SalesRecord{
				OrderDate:     o.Date,
				OrderID:       o.ID,
				CustomerName:  customer,
				CustomerEmail: email,
				ProductID:     l.ProductID,
				ProductName:   UnknownProduct,
				Quantity:      l.Quantity,
				TotalAmount:   lineAmount(l),
			}
			if l.Product != nil {
				rec.ProductName = l.Product.Title
				rec.Category = CategoryLabel(l.Product.Category)
				rec.UnitPrice = l.Product.Price
			}
			out = append(out, rec)
		}
	}
	return out
}
