package domain

import "slices"

// JSON field names are camelCase to stay byte-compatible with the persisted
// BusinessData document layout used by the web frontend.

type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Stock         int     `json:"stock"`
	MinStockLevel int     `json:"minStockLevel"`
	CostPrice     float64 `json:"costPrice"`
	SalePrice     float64 `json:"salePrice"`
	Unit          string  `json:"unit"`
}

type Sale struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"totalAmount"`
	Date        string  `json:"date"`
	CustomerID  string  `json:"customerId,omitempty"`
}

type Expense struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

type Customer struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	TotalSpent       float64 `json:"totalSpent"`
	LastPurchaseDate string  `json:"lastPurchaseDate,omitempty"`
}

type BusinessSettings struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Theme       string `json:"theme"`
	CompactMode bool   `json:"compactMode"`
	AccentColor string `json:"accentColor"`
	Currency    string `json:"currency"`
}

// BusinessData is the single aggregate the whole application operates on.
// It is persisted wholesale as one JSON document under a fixed storage key.
type BusinessData struct {
	Products  []Product        `json:"products"`
	Sales     []Sale           `json:"sales"`
	Expenses  []Expense        `json:"expenses"`
	Customers []Customer       `json:"customers"`
	Settings  BusinessSettings `json:"settings"`
}

// Clone returns a deep copy of the aggregate. Record structs carry no
// reference types, so cloning the slices is sufficient.
func (d *BusinessData) Clone() *BusinessData {
	if d == nil {
		return nil
	}
	return &BusinessData{
		Products:  slices.Clone(d.Products),
		Sales:     slices.Clone(d.Sales),
		Expenses:  slices.Clone(d.Expenses),
		Customers: slices.Clone(d.Customers),
		Settings:  d.Settings,
	}
}

type SaleCreateRequest struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	CustomerID string `json:"customerId,omitempty"`
}

type ProductCreateRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Stock         int     `json:"stock"`
	MinStockLevel int     `json:"minStockLevel"`
	CostPrice     float64 `json:"costPrice"`
	SalePrice     float64 `json:"salePrice"`
	Unit          string  `json:"unit"`
}

type ProductUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	MinStockLevel *int     `json:"minStockLevel,omitempty"`
	CostPrice     *float64 `json:"costPrice,omitempty"`
	SalePrice     *float64 `json:"salePrice,omitempty"`
	Unit          *string  `json:"unit,omitempty"`
}

type CustomerCreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ExpenseCreateRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date,omitempty"`
	Type        string  `json:"type"`
}

// SettingsUpdateRequest replaces the settings record. ApplyTemplate is the
// caller's explicit confirmation that, when the business vertical changes,
// the product and expense collections should be swapped for that vertical's
// starter template. Without it a vertical change touches settings only.
type SettingsUpdateRequest struct {
	Settings      BusinessSettings `json:"settings"`
	ApplyTemplate bool             `json:"applyTemplate"`
}

type LoginRequest struct {
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}

type Actor struct {
	Username string
}

type DashboardSummary struct {
	NetRevenue    float64 `json:"netRevenue"`
	NetOutflow    float64 `json:"netOutflow"`
	GrossProfit   float64 `json:"grossProfit"`
	LowStockCount int     `json:"lowStockCount"`
	RecentSales   []Sale  `json:"recentSales"`
}

// ReportSlice is one wedge of the per-product revenue distribution.
type ReportSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DailyFlow is one day of the revenue-vs-expense series.
type DailyFlow struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type BusinessReport struct {
	NetRevenue     float64       `json:"netRevenue"`
	IncomingTotal  float64       `json:"incomingTotal"`
	NetOutflow     float64       `json:"netOutflow"`
	NetProfit      float64       `json:"netProfit"`
	SalesByProduct []ReportSlice `json:"salesByProduct"`
	DailyFlows     []DailyFlow   `json:"dailyFlows"`
}

type InsightResponse struct {
	Insights    string `json:"insights"`
	GeneratedAt string `json:"generatedAt"`
}

const (
	ExpenseIncoming = "incoming"
	ExpenseOutgoing = "outgoing"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultCurrency backfills documents written before the currency field existed.
const DefaultCurrency = "₹"

// AccentColors are the only accent values the frontend theme engine accepts.
var AccentColors = []string{"indigo", "emerald", "rose", "amber", "cyan", "violet"}

func IsAccentColor(value string) bool {
	return slices.Contains(AccentColors, value)
}

func IsExpenseType(value string) bool {
	return value == ExpenseIncoming || value == ExpenseOutgoing
}
