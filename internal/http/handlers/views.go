package handlers

import (
	"posledger/internal/domain"
	"posledger/internal/money"
	"posledger/internal/services"
)

type productView struct {
	Code         int                 `json:"code"`
	Name         string              `json:"name"`
	Price        money.Money         `json:"price"`
	Stock        int                 `json:"stock"`
	Availability domain.Availability `json:"availability"`
}

func viewProduct(p domain.Product) productView {
	return productView{Code: p.Code, Name: p.Name, Price: p.Price, Stock: p.Stock, Availability: services.Classify(p.Stock)}
}

type lineView struct {
	Code      int         `json:"code"`
	Name      string      `json:"name"`
	UnitPrice money.Money `json:"unit_price"`
	Quantity  int         `json:"quantity"`
	LineTotal money.Money `json:"line_total"`
}

type saleView struct {
	ID        int         `json:"id"`
	Timestamp string      `json:"timestamp"`
	Items     []lineView  `json:"items"`
	Subtotal  money.Money `json:"subtotal"`
	Discount  money.Money `json:"discount_percent"`
	Total     money.Money `json:"total"`
}

func viewSale(s domain.Sale) saleView {
	items := make([]lineView, len(s.Items))
	for i, it := range s.Items {
		items[i] = lineView{
			Code:      it.ProductCode,
			Name:      it.ProductName,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal,
		}
	}
	return saleView{
		ID:        s.ID,
		Timestamp: domain.Stamp(s.Timestamp),
		Items:     items,
		Subtotal:  s.Subtotal,
		Discount:  s.DiscountPercent,
		Total:     s.Total,
	}
}
