package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/insight"
	"mydukaan/backend/internal/service"
	"mydukaan/backend/internal/store/memory"
)

// newTestAPI builds a full API with an in-memory store, real AuthManager and
// real Service so handler tests exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	svc, err := service.New(context.Background(), memory.NewSeeded(), insight.Offline{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	auth := NewAuthManager("test-secret-key", time.Hour, []string{"1234", "admin"})
	return New(svc, auth, "*")
}

func authToken(t *testing.T, handler http.Handler) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"passcode": "admin"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d (body: %s)", rec.Code, rec.Body.String())
	}
	var body domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return body.AccessToken
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleLogin_BothPasscodes(t *testing.T) {
	handler := newTestAPI(t).Handler()

	for _, passcode := range []string{"admin", "1234"} {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": passcode})
		if rec.Code != http.StatusOK {
			t.Fatalf("passcode %q: expected 200, got %d (body: %s)", passcode, rec.Code, rec.Body.String())
		}
	}
}

func TestHandleLogin_InvalidPasscode(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": "letmein"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleLogin_RateLimit(t *testing.T) {
	handler := newTestAPI(t).Handler()

	// The limiter allows 5 attempts per minute per client address.
	var last int
	for i := 0; i < 6; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"passcode": "wrong"})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on sixth attempt, got %d", last)
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/products", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	handler := newTestAPI(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/products", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleDashboard(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var summary domain.DashboardSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.NetRevenue != 0 {
		t.Fatalf("expected no revenue on fresh seed, got %v", summary.NetRevenue)
	}
}

func TestHandleProducts_ListAndCreate(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/products", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var products []domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 seeded products, got %d", len(products))
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/products", token, domain.ProductCreateRequest{
		Name: "Green Tea", Category: "Beverages", Stock: 10, MinStockLevel: 2, CostPrice: 50, SalePrice: 120, Unit: "box",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleProducts_CreateValidation(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/products", token, domain.ProductCreateRequest{Name: ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProductActions_PatchAndDelete(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := authToken(t, handler)

	product := api.service.ListProducts()[0]

	stock := 7
	rec := doJSON(t, handler, http.MethodPatch, "/api/v1/products/"+product.ID, token, domain.ProductUpdateRequest{Stock: &stock})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var updated domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if updated.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", updated.Stock)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/products/"+product.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/products/"+product.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestHandleSales_CreateAndReject(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := authToken(t, handler)

	product := api.service.ListProducts()[0]

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sales", token, domain.SaleCreateRequest{ProductID: product.ID, Quantity: 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var sale domain.Sale
	if err := json.NewDecoder(rec.Body).Decode(&sale); err != nil {
		t.Fatalf("decode sale: %v", err)
	}
	if sale.TotalAmount != product.SalePrice {
		t.Fatalf("expected total %v, got %v", product.SalePrice, sale.TotalAmount)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sales", token, domain.SaleCreateRequest{ProductID: product.ID, Quantity: 100000})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for oversell, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleExpensesAndLedgerClear(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/expenses", token, domain.ExpenseCreateRequest{
		Category: "Utilities", Amount: 500, Type: domain.ExpenseOutgoing,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/ledger/clear", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/expenses", token, nil)
	var expenses []domain.Expense
	if err := json.NewDecoder(rec.Body).Decode(&expenses); err != nil {
		t.Fatalf("decode expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expected cleared ledger, got %d expenses", len(expenses))
	}
}

func TestHandleCustomers_CreateAndClear(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", token, domain.CustomerCreateRequest{
		Name: "Meera Iyer", Email: "meera@example.in", Phone: "9812345678",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/customers/clear", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/customers", token, nil)
	var customers []domain.Customer
	if err := json.NewDecoder(rec.Body).Decode(&customers); err != nil {
		t.Fatalf("decode customers: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("expected empty directory, got %d customers", len(customers))
	}
}

func TestHandleSettings_TemplateSwap(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()
	token := authToken(t, handler)

	settings := api.service.Settings()
	settings.Type = "Electronics Store"

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/settings", token, domain.SettingsUpdateRequest{
		Settings: settings, ApplyTemplate: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	products := api.service.ListProducts()
	if len(products) == 0 || products[0].Name != "USB-C Cable 2m" {
		t.Fatalf("expected electronics starter catalog, got %+v", products)
	}
}

func TestHandleInsights(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/insights", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.InsightResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode insights: %v", err)
	}
	if resp.Insights != insight.FallbackOffline {
		t.Fatalf("expected offline fallback text, got %q", resp.Insights)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestAPI(t).Handler()
	token := authToken(t, handler)

	rec := doJSON(t, handler, http.MethodDelete, "/api/v1/dashboard", token, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
