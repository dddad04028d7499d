// Package templates holds the built-in starter catalogs keyed by business
// vertical, plus the seed aggregate used on first load.
package templates

import (
	"time"

	"mydukaan/backend/internal/domain"
)

// DefaultVertical seeds brand-new installations.
const DefaultVertical = "Cafe / Coffee Shop"

// Template is a vertical-specific starter catalog. Applying one replaces the
// product and expense collections wholesale.
type Template struct {
	Products []domain.Product
	Expenses []domain.Expense
}

var industryTemplates = map[string]Template{
	"Cafe / Coffee Shop": {
		Products: []domain.Product{
			{ID: "p1", Name: "Arabica Beans", Category: "Supplies", Stock: 45, MinStockLevel: 10, CostPrice: 1200, SalePrice: 2400, Unit: "kg"},
			{ID: "p2", Name: "Full Cream Milk", Category: "Dairy", Stock: 24, MinStockLevel: 6, CostPrice: 65, SalePrice: 90, Unit: "liters"},
			{ID: "p3", Name: "Caramel Syrup", Category: "Add-ons", Stock: 12, MinStockLevel: 4, CostPrice: 450, SalePrice: 850, Unit: "bottles"},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Category: "Rent", Amount: 15000, Description: "Shop Rent", Type: domain.ExpenseOutgoing},
		},
	},
	"Hardware Store": {
		Products: []domain.Product{
			{ID: "p1", Name: "Steel Hammer", Category: "Tools", Stock: 15, MinStockLevel: 5, CostPrice: 350, SalePrice: 550, Unit: "pcs"},
			{ID: "p2", Name: "Galvanized Screws", Category: "Fasteners", Stock: 500, MinStockLevel: 100, CostPrice: 2, SalePrice: 5, Unit: "box"},
			{ID: "p3", Name: "Wall Paint (4L)", Category: "Paints", Stock: 20, MinStockLevel: 5, CostPrice: 850, SalePrice: 1400, Unit: "can"},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Category: "Raw Stock", Amount: 8000, Description: "Initial Tools Stock", Type: domain.ExpenseOutgoing},
		},
	},
	"Clothing Boutique": {
		Products: []domain.Product{
			{ID: "p1", Name: "Cotton T-Shirt", Category: "Apparel", Stock: 50, MinStockLevel: 10, CostPrice: 450, SalePrice: 950, Unit: "pcs"},
			{ID: "p2", Name: "Denim Jeans", Category: "Apparel", Stock: 30, MinStockLevel: 5, CostPrice: 1200, SalePrice: 2800, Unit: "pcs"},
			{ID: "p3", Name: "Silk Scarf", Category: "Accessories", Stock: 15, MinStockLevel: 3, CostPrice: 300, SalePrice: 750, Unit: "pcs"},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Category: "Rent", Amount: 25000, Description: "Boutique Rent", Type: domain.ExpenseOutgoing},
		},
	},
	"Pharmacy": {
		Products: []domain.Product{
			{ID: "p1", Name: "Paracetamol 500mg", Category: "Medicines", Stock: 100, MinStockLevel: 20, CostPrice: 20, SalePrice: 45, Unit: "strip"},
			{ID: "p2", Name: "Digital Thermometer", Category: "Equipment", Stock: 15, MinStockLevel: 5, CostPrice: 150, SalePrice: 350, Unit: "pcs"},
			{ID: "p3", Name: "Face Masks (50pk)", Category: "Supplies", Stock: 40, MinStockLevel: 10, CostPrice: 100, SalePrice: 250, Unit: "box"},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Category: "Taxes", Amount: 5000, Description: "License Fee", Type: domain.ExpenseOutgoing},
		},
	},
	"Electronics Store": {
		Products: []domain.Product{
			{ID: "p1", Name: "USB-C Cable 2m", Category: "Cables", Stock: 40, MinStockLevel: 10, CostPrice: 150, SalePrice: 450, Unit: "pcs"},
			{ID: "p2", Name: "Wireless Mouse", Category: "Peripherals", Stock: 25, MinStockLevel: 5, CostPrice: 600, SalePrice: 1200, Unit: "pcs"},
			{ID: "p3", Name: "Bluetooth Speaker", Category: "Audio", Stock: 10, MinStockLevel: 2, CostPrice: 1800, SalePrice: 3500, Unit: "pcs"},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Category: "Shipping", Amount: 1200, Description: "Inventory Freight", Type: domain.ExpenseOutgoing},
		},
	},
}

// Verticals lists every business type that has a starter template.
func Verticals() []string {
	names := make([]string, 0, len(industryTemplates))
	for name := range industryTemplates {
		names = append(names, name)
	}
	return names
}

// ForType returns a fresh copy of the template for the given vertical.
// Template expenses are stamped with the current time, matching how the
// catalogs were originally defined.
func ForType(businessType string) (Template, bool) {
	tmpl, ok := industryTemplates[businessType]
	if !ok {
		return Template{}, false
	}

	now := time.Now().UTC().Format(time.RFC3339)
	products := make([]domain.Product, len(tmpl.Products))
	copy(products, tmpl.Products)
	expenses := make([]domain.Expense, len(tmpl.Expenses))
	for i, expense := range tmpl.Expenses {
		expense.Date = now
		expenses[i] = expense
	}
	return Template{Products: products, Expenses: expenses}, true
}

// DefaultSettings are the settings a fresh installation starts with, also
// used to repair documents persisted without a settings record.
func DefaultSettings() domain.BusinessSettings {
	return domain.BusinessSettings{
		Name:        "MyDukaan",
		Type:        DefaultVertical,
		Theme:       domain.ThemeLight,
		CompactMode: false,
		AccentColor: "indigo",
		Currency:    domain.DefaultCurrency,
	}
}

// Seed builds the aggregate a brand-new installation starts from.
func Seed() *domain.BusinessData {
	tmpl, _ := ForType(DefaultVertical)
	now := time.Now().UTC().Format(time.RFC3339)

	return &domain.BusinessData{
		Products: tmpl.Products,
		Sales:    []domain.Sale{},
		Expenses: tmpl.Expenses,
		Customers: []domain.Customer{
			{ID: "c1", Name: "Rahul Khanna", Email: "rahul@example.in", Phone: "9876543210", TotalSpent: 0, LastPurchaseDate: now},
		},
		Settings: DefaultSettings(),
	}
}
