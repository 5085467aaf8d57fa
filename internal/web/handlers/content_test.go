package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ozarkhomeloans/portal/pkg/models"
)

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoanProductCRUD(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	body := `{
		"name": "FHA Loan",
		"slug": "fha-loan",
		"tagline": "Low down payment",
		"highlights": ["3.5% down", "Flexible credit"],
		"is_active": true,
		"primary_cta": {"text": "Apply Now", "link": "/apply", "style": "primary"}
	}`
	w := doJSON(t, r, http.MethodPost, "/api/loan-products", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data, _ := decodeEnvelope(t, w)
	var created models.LoanProduct
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal created product: %v", err)
	}
	if created.ID == "" {
		t.Error("expected server-assigned ID")
	}
	if len(created.Highlights) != 2 {
		t.Errorf("highlights = %v", created.Highlights)
	}

	// Fetch it back.
	w = doJSON(t, r, http.MethodGet, "/api/loan-products/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	// Update keeps the original creation time.
	update := `{"name": "FHA Home Loan", "slug": "fha-loan", "is_active": false}`
	w = doJSON(t, r, http.MethodPut, "/api/loan-products/"+created.ID, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data, _ = decodeEnvelope(t, w)
	var updated models.LoanProduct
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("unmarshal updated product: %v", err)
	}
	if updated.Name != "FHA Home Loan" {
		t.Errorf("name = %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update changed created_at")
	}

	// Delete, then 404.
	w = doJSON(t, r, http.MethodDelete, "/api/loan-products/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/loan-products/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestCreateLoanProductRejectsBadSlug(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	for _, slug := range []string{"", "Bad Slug", "-leading", "trailing-", "UPPER"} {
		body := `{"name": "Test", "slug": "` + slug + `"}`
		w := doJSON(t, r, http.MethodPost, "/api/loan-products", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("slug %q: expected 400, got %d", slug, w.Code)
		}
	}
}

func TestReorderLoanProducts(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		body := `{"name": "` + name + `", "slug": "product-` + name + `", "is_active": true}`
		w := doJSON(t, r, http.MethodPost, "/api/loan-products", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d", name, w.Code)
		}
		data, _ := decodeEnvelope(t, w)
		var p models.LoanProduct
		if err := json.Unmarshal(data, &p); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, p.ID)
	}

	// Move the first product to the end.
	body := `[
		{"id": "` + ids[0] + `", "display_order": 2},
		{"id": "` + ids[1] + `", "display_order": 0},
		{"id": "` + ids[2] + `", "display_order": 1}
	]`
	w := doJSON(t, r, http.MethodPut, "/api/loan-products/reorder", body)
	if w.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	products, err := h.db.ListLoanProducts(false)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	var got []string
	for _, p := range products {
		got = append(got, p.Name)
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReorderRejectsEmptyList(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodPut, "/api/loan-products/reorder", `[]`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	// Unwritten setting returns success with null data.
	w := doJSON(t, r, http.MethodGet, "/api/settings/about", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get unwritten: expected 200, got %d", w.Code)
	}
	data, _ := decodeEnvelope(t, w)
	if string(data) != "null" && len(data) != 0 {
		t.Errorf("expected null data, got %s", data)
	}

	doc := `{"heading": "About Us", "body": "We are a local brokerage."}`
	w = doJSON(t, r, http.MethodPut, "/api/settings/about", doc)
	if w.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/settings/about", "")
	data, _ = decodeEnvelope(t, w)
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal setting: %v", err)
	}
	if got["heading"] != "About Us" {
		t.Errorf("heading = %q", got["heading"])
	}
}

func TestSettingsNavigationOrderPreserved(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	doc := `[
		{"id": "home", "label": "Home", "url": "/", "enabled": true},
		{"id": "loans", "label": "Loans", "url": "/loans", "enabled": true},
		{"id": "about", "label": "About", "url": "/about", "enabled": false}
	]`
	w := doJSON(t, r, http.MethodPut, "/api/settings/navigation", doc)
	if w.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/settings/navigation", "")
	data, _ := decodeEnvelope(t, w)
	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("unmarshal navigation: %v", err)
	}
	if len(items) != 3 || items[0].ID != "home" || items[2].ID != "about" {
		t.Errorf("navigation order not preserved: %+v", items)
	}
}

func TestSettingsRejectsWrongShape(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	// navigation must be an array of menu items, not an object.
	w := doJSON(t, r, http.MethodPut, "/api/settings/navigation", `{"not": "an array"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSettingsUnknownName(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodGet, "/api/settings/nonsense", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get: expected 404, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPut, "/api/settings/nonsense", `{}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("put: expected 404, got %d", w.Code)
	}
}

func TestTaxRateLookupEndpoint(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodGet, "/api/tax-rates/72401", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := decodeEnvelope(t, w)
	var result struct {
		County  string  `json:"county"`
		City    string  `json:"city"`
		TaxRate float64 `json:"tax_rate"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.County != "Craighead" || result.City != "Jonesboro" || result.TaxRate != 0.58 {
		t.Errorf("lookup 72401 = %+v", result)
	}

	w = doJSON(t, r, http.MethodGet, "/api/tax-rates/00000", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown zip: expected 404, got %d", w.Code)
	}
}

func TestTaxRateSearchEndpoint(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	w := doJSON(t, r, http.MethodGet, "/api/tax-rates?q=724&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := decodeEnvelope(t, w)
	var results []struct {
		Zip string `json:"zip"`
	}
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(results) == 0 || len(results) > 5 {
		t.Fatalf("got %d results", len(results))
	}
	for _, rec := range results {
		if !strings.HasPrefix(rec.Zip, "724") {
			t.Errorf("unexpected zip %s for prefix query", rec.Zip)
		}
	}

	// Empty query returns an empty list, not an error.
	w = doJSON(t, r, http.MethodGet, "/api/tax-rates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("empty query: expected 200, got %d", w.Code)
	}
	data, _ = decodeEnvelope(t, w)
	if string(data) != "[]" {
		t.Errorf("empty query data = %s", data)
	}
}

func TestLoanPageSettingsSingleton(t *testing.T) {
	h := testHandler(t)
	r := testRouter(h)

	// Unwritten singleton returns an empty document, not an error.
	w := doJSON(t, r, http.MethodGet, "/api/loan-page-settings", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get unwritten: expected 200, got %d", w.Code)
	}

	doc := `{"hero_title": "Find Your Loan", "cta_text": "Get Started", "cta_link": "/apply"}`
	w = doJSON(t, r, http.MethodPut, "/api/loan-page-settings", doc)
	if w.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/loan-page-settings", "")
	data, _ := decodeEnvelope(t, w)
	var got models.LoanPageSettings
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal settings: %v", err)
	}
	if got.HeroTitle != "Find Your Loan" || got.CTAText != "Get Started" {
		t.Errorf("settings = %+v", got)
	}
}
