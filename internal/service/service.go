// Package service owns the in-memory BusinessData aggregate and applies
// every mutation to it. All handlers go through here; nothing else touches
// the document.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"mydukaan/backend/internal/derive"
	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/insight"
	"mydukaan/backend/internal/store"
	"mydukaan/backend/internal/templates"
	"mydukaan/backend/internal/xid"
)

// recentSalesLimit matches the number of sales the dashboard chart shows.
const recentSalesLimit = 12

// Service holds the authoritative copy of the aggregate. Mutations update
// the in-memory document first and then persist it; a failed save is logged
// and the mutation stands, matching the optimistic local-first model the
// frontend was built around.
type Service struct {
	store    store.DocumentStore
	insights insight.Generator

	mu   sync.RWMutex
	data *domain.BusinessData

	now func() time.Time
}

// New loads the persisted document, seeding a fresh installation with the
// default starter catalog when none exists.
func New(ctx context.Context, documents store.DocumentStore, insights insight.Generator) (*Service, error) {
	svc := &Service{
		store:    documents,
		insights: insights,
		now:      time.Now,
	}

	data, err := documents.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		data = templates.Seed()
		if err := documents.Save(ctx, data); err != nil {
			return nil, fmt.Errorf("service: persist seed document: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("service: load document: %w", err)
	}

	// Older documents may lack the settings record entirely, or just the
	// currency field; repair either once on load.
	repaired := false
	if data.Settings == (domain.BusinessSettings{}) {
		data.Settings = templates.DefaultSettings()
		repaired = true
	}
	if data.Settings.Currency == "" {
		data.Settings.Currency = domain.DefaultCurrency
		repaired = true
	}
	if repaired {
		if err := documents.Save(ctx, data); err != nil {
			log.Printf("WARN service: persist settings backfill: %v", err)
		}
	}

	svc.data = data
	return svc, nil
}

// persist writes the current document. Callers hold the write lock. A save
// failure does not roll the mutation back, it is logged and the next save
// carries the full document anyway.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data.Clone()); err != nil {
		log.Printf("WARN service: persist document: %v", err)
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Service) Snapshot() *domain.BusinessData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// RecordSale checks stock, appends the sale and decrements inventory in one
// step. A quantity above the available stock rejects the whole sale and
// leaves both collections untouched.
func (s *Service) RecordSale(ctx context.Context, req domain.SaleCreateRequest) (domain.Sale, error) {
	if req.ProductID == "" {
		return domain.Sale{}, fmt.Errorf("%w: product id is required", store.ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return domain.Sale{}, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, product := range s.data.Products {
		if product.ID == req.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Sale{}, fmt.Errorf("%w: product %s", store.ErrNotFound, req.ProductID)
	}

	product := &s.data.Products[idx]
	if req.Quantity > product.Stock {
		return domain.Sale{}, fmt.Errorf("%w: %d requested, %d available", store.ErrInsufficientStock, req.Quantity, product.Stock)
	}

	product.Stock = max(0, product.Stock-req.Quantity)

	sale := domain.Sale{
		ID:          xid.New("sale"),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		TotalAmount: product.SalePrice * float64(req.Quantity),
		Date:        s.timestamp(),
		CustomerID:  req.CustomerID,
	}
	s.data.Sales = append(s.data.Sales, sale)

	if req.CustomerID != "" {
		for i := range s.data.Customers {
			if s.data.Customers[i].ID == req.CustomerID {
				s.data.Customers[i].TotalSpent += sale.TotalAmount
				s.data.Customers[i].LastPurchaseDate = sale.Date
				break
			}
		}
	}

	s.persist(ctx)
	return sale, nil
}

func (s *Service) ListSales() []domain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Sales)
}

func (s *Service) ListProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Products)
}

func (s *Service) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", store.ErrInvalidInput)
	}
	if req.Stock < 0 || req.MinStockLevel < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock levels must not be negative", store.ErrInvalidInput)
	}
	if req.CostPrice < 0 || req.SalePrice < 0 {
		return domain.Product{}, fmt.Errorf("%w: prices must not be negative", store.ErrInvalidInput)
	}

	product := domain.Product{
		ID:            xid.New("prod"),
		Name:          strings.TrimSpace(req.Name),
		Category:      req.Category,
		Stock:         req.Stock,
		MinStockLevel: req.MinStockLevel,
		CostPrice:     req.CostPrice,
		SalePrice:     req.SalePrice,
		Unit:          req.Unit,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Products = append(s.data.Products, product)
	s.persist(ctx)
	return product, nil
}

// UpdateProduct applies the fields present in the request and leaves the
// rest alone. Restocking is a plain stock update through here.
func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, product := range s.data.Products {
		if product.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}

	product := &s.data.Products[idx]
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return domain.Product{}, fmt.Errorf("%w: product name is required", store.ErrInvalidInput)
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return domain.Product{}, fmt.Errorf("%w: stock must not be negative", store.ErrInvalidInput)
		}
		product.Stock = *req.Stock
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			return domain.Product{}, fmt.Errorf("%w: minimum stock must not be negative", store.ErrInvalidInput)
		}
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.CostPrice != nil {
		if *req.CostPrice < 0 {
			return domain.Product{}, fmt.Errorf("%w: cost price must not be negative", store.ErrInvalidInput)
		}
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		if *req.SalePrice < 0 {
			return domain.Product{}, fmt.Errorf("%w: sale price must not be negative", store.ErrInvalidInput)
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}

	s.persist(ctx)
	return *product, nil
}

// DeleteProduct removes the product record. Sales referencing it keep their
// copied product name, so history stays readable.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, product := range s.data.Products {
		if product.ID == id {
			s.data.Products = append(s.data.Products[:i], s.data.Products[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
}

func (s *Service) ListCustomers() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Customers)
}

func (s *Service) AddCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer name is required", store.ErrInvalidInput)
	}

	customer := domain.Customer{
		ID:    xid.New("cust"),
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Phone: req.Phone,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Customers = append(s.data.Customers, customer)
	s.persist(ctx)
	return customer, nil
}

// ClearCustomers wipes the customer directory. Sales keep their customer
// ids; those just dangle afterwards.
func (s *Service) ClearCustomers(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Customers = []domain.Customer{}
	s.persist(ctx)
}

func (s *Service) ListExpenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Expenses)
}

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseCreateRequest) (domain.Expense, error) {
	if strings.TrimSpace(req.Category) == "" {
		return domain.Expense{}, fmt.Errorf("%w: expense category is required", store.ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return domain.Expense{}, fmt.Errorf("%w: amount must be positive", store.ErrInvalidInput)
	}
	if !domain.IsExpenseType(req.Type) {
		return domain.Expense{}, fmt.Errorf("%w: type must be %q or %q", store.ErrInvalidInput, domain.ExpenseIncoming, domain.ExpenseOutgoing)
	}

	date := req.Date
	if date == "" {
		date = s.timestamp()
	}

	expense := domain.Expense{
		ID:          xid.New("exp"),
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Type:        req.Type,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Expenses = append(s.data.Expenses, expense)
	s.persist(ctx)
	return expense, nil
}

// ClearLedger wipes the financial history, expenses and sales together.
// Products, customers and settings are untouched.
func (s *Service) ClearLedger(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Expenses = []domain.Expense{}
	s.data.Sales = []domain.Sale{}
	s.persist(ctx)
}

func (s *Service) Settings() domain.BusinessSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Settings
}

// UpdateSettings replaces the settings record. When the business vertical
// changes and the caller confirmed with ApplyTemplate, products and expenses
// are swapped for the new vertical's starter catalog; without confirmation
// only the settings change.
func (s *Service) UpdateSettings(ctx context.Context, req domain.SettingsUpdateRequest) (domain.BusinessSettings, error) {
	next := req.Settings
	if strings.TrimSpace(next.Name) == "" {
		return domain.BusinessSettings{}, fmt.Errorf("%w: business name is required", store.ErrInvalidInput)
	}
	if next.Theme != domain.ThemeLight && next.Theme != domain.ThemeDark {
		return domain.BusinessSettings{}, fmt.Errorf("%w: theme must be %q or %q", store.ErrInvalidInput, domain.ThemeLight, domain.ThemeDark)
	}
	if !domain.IsAccentColor(next.AccentColor) {
		return domain.BusinessSettings{}, fmt.Errorf("%w: unknown accent color %q", store.ErrInvalidInput, next.AccentColor)
	}
	if next.Currency == "" {
		next.Currency = domain.DefaultCurrency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ApplyTemplate && next.Type != s.data.Settings.Type {
		tmpl, ok := templates.ForType(next.Type)
		if !ok {
			return domain.BusinessSettings{}, fmt.Errorf("%w: no template for business type %q", store.ErrInvalidInput, next.Type)
		}
		s.data.Products = tmpl.Products
		s.data.Expenses = tmpl.Expenses
	}

	s.data.Settings = next
	s.persist(ctx)
	return next, nil
}

// Dashboard computes the headline figures plus the most recent sales,
// newest first.
func (s *Service) Dashboard() domain.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revenue := derive.NetRevenue(s.data.Sales)
	outflow := derive.NetOutflow(s.data.Expenses)

	recent := slices.Clone(s.data.Sales)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > recentSalesLimit {
		recent = recent[:recentSalesLimit]
	}

	return domain.DashboardSummary{
		NetRevenue:    revenue,
		NetOutflow:    outflow,
		GrossProfit:   revenue - outflow,
		LowStockCount: derive.LowStockCount(s.data.Products),
		RecentSales:   recent,
	}
}

// Report computes the full reporting view, including the per-product revenue
// split and the last seven days of cash flow.
func (s *Service) Report() domain.BusinessReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	revenue := derive.NetRevenue(s.data.Sales)
	outflow := derive.NetOutflow(s.data.Expenses)

	return domain.BusinessReport{
		NetRevenue:     revenue,
		IncomingTotal:  derive.IncomingTotal(s.data.Expenses),
		NetOutflow:     outflow,
		NetProfit:      revenue - outflow,
		SalesByProduct: derive.SalesByProduct(s.data.Sales),
		DailyFlows:     derive.DailySeries(s.data.Sales, s.data.Expenses, s.now()),
	}
}

// GenerateInsights asks the configured generator for an analysis of the
// current snapshot.
func (s *Service) GenerateInsights(ctx context.Context) domain.InsightResponse {
	snapshot := s.Snapshot()
	return domain.InsightResponse{
		Insights:    s.insights.BusinessInsights(ctx, snapshot),
		GeneratedAt: s.timestamp(),
	}
}
