// Package derive computes reporting figures from the aggregate. Everything
// here is a pure function of the records passed in; nothing is cached or
// stored, the figures are recomputed on every request.
package derive

import (
	"sort"
	"strings"
	"time"

	"mydukaan/backend/internal/domain"
)

// NetRevenue sums the recorded amount of every sale.
func NetRevenue(sales []domain.Sale) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.TotalAmount
	}
	return total
}

// IncomingTotal sums expenses of the incoming type, capital injections and
// other non-sale income.
func IncomingTotal(expenses []domain.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.Type == domain.ExpenseIncoming {
			total += expense.Amount
		}
	}
	return total
}

// NetOutflow sums expenses of the outgoing type only. Incoming entries are
// income, not spend, and never count against profit.
func NetOutflow(expenses []domain.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.Type == domain.ExpenseOutgoing {
			total += expense.Amount
		}
	}
	return total
}

// LowStockCount counts products at or below their minimum stock level.
func LowStockCount(products []domain.Product) int {
	count := 0
	for _, product := range products {
		if product.Stock <= product.MinStockLevel {
			count++
		}
	}
	return count
}

// SalesByProduct groups sale revenue by product name, largest first. Ties
// break on name so the ordering is stable.
func SalesByProduct(sales []domain.Sale) []domain.ReportSlice {
	totals := make(map[string]float64)
	for _, sale := range sales {
		totals[sale.ProductName] += sale.TotalAmount
	}

	slices := make([]domain.ReportSlice, 0, len(totals))
	for name, value := range totals {
		slices = append(slices, domain.ReportSlice{Name: name, Value: value})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

// DailySeries buckets sales and expenses into the last seven calendar days
// ending at now, oldest first. Records match a bucket when their date string
// starts with that day in YYYY-MM-DD form, so both bare dates and full
// RFC 3339 timestamps land correctly. Every expense entry counts here, both
// types; the series shows cash movement per day, not profit.
func DailySeries(sales []domain.Sale, expenses []domain.Expense, now time.Time) []domain.DailyFlow {
	flows := make([]domain.DailyFlow, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6).Format("2006-01-02")
		flows[i].Date = day
		for _, sale := range sales {
			if strings.HasPrefix(sale.Date, day) {
				flows[i].Revenue += sale.TotalAmount
			}
		}
		for _, expense := range expenses {
			if strings.HasPrefix(expense.Date, day) {
				flows[i].Expenses += expense.Amount
			}
		}
	}
	return flows
}
