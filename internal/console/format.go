package console

import (
	"fmt"
	"io"
	"strings"

	"posledger/internal/domain"
	"posledger/internal/money"
	"posledger/internal/services"
)

// shortStamp renders a sale time as "2006-01-02 15:04:05" in its own offset.
func shortStamp(s domain.Sale) string {
	return s.Timestamp.Format("2006-01-02 15:04:05")
}

func printProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "\n@@@ No products registered. @@@")
		return
	}
	fmt.Fprintln(w, "\n======= PRODUCTS =======")
	for _, p := range products {
		fmt.Fprintf(w, "[%03d] %-30s %12s  stock=%d  %s\n",
			p.Code, p.Name, p.Price, p.Stock, services.Classify(p.Stock).Status)
	}
	fmt.Fprintln(w, "========================")
}

func printReceipt(w io.Writer, s domain.Sale) {
	fmt.Fprintln(w, "\n=========== RECEIPT ===========")
	fmt.Fprintf(w, "Sale #%d  %s\n", s.ID, shortStamp(s))
	fmt.Fprintln(w, strings.Repeat("-", 31))
	for _, it := range s.Items {
		fmt.Fprintf(w, "[%03d] %-20s x%-3d %10s  %10s\n",
			it.ProductCode, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	fmt.Fprintln(w, strings.Repeat("-", 31))
	fmt.Fprintf(w, "Subtotal: %s\n", s.Subtotal)
	fmt.Fprintf(w, "Discount: %s%%\n", s.DiscountPercent.Text())
	fmt.Fprintf(w, "Total:    %s\n", s.Total)
	fmt.Fprintln(w, "===============================")
}

func printSales(w io.Writer, sales []domain.Sale, revenue money.Money) {
	if len(sales) == 0 {
		fmt.Fprintln(w, "\n@@@ No sales recorded. @@@")
		return
	}
	fmt.Fprintln(w, "\n=========== SALES ============")
	for _, s := range sales {
		fmt.Fprintf(w, "#%-4d %s  %s  items=%d  disc=%s%%\n",
			s.ID, shortStamp(s), s.Total, len(s.Items), s.DiscountPercent.Text())
	}
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total revenue: %s\n", revenue)
	fmt.Fprintln(w, "==============================")
}
