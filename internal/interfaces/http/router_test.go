package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite/sqlitetest"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

type apiFixture struct {
	app    *fiber.App
	env    *sqlitetest.Env
	branch *entity.Branch
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	env := sqlitetest.New(t)
	log := zerolog.Nop()
	deps := apphttp.RouterDeps{
		BranchUC:   usecase.NewBranchUseCase(env.Repos.Branches, env.Repos.Staff, log),
		StaffUC:    usecase.NewStaffUseCase(env.Repos.Branches, env.Repos.Staff, log),
		CustomerUC: usecase.NewCustomerUseCase(env.Repos.Branches, env.Repos.Customers, log),
		CategoryUC: usecase.NewCategoryUseCase(env.Repos.Branches, env.Repos.Categories, log),
		ProductUC:  usecase.NewProductUseCase(env.Repos, env.Tx, log),
		InvoiceUC:  billing.NewInvoiceUseCase(env.Repos, env.Tx, log),
		InvoicePDF: billing.NewPDFUseCase(env.Repos, infrapdf.NewMarotoPDFGenerator(), log),
		ReportUC:   analytics.NewReportUseCase(env.Repos, analytics.ReportConfig{}, log),
		Auth:       testAuth,
	}
	app := apphttp.NewApp(apphttp.AppConfig{Name: "backoffice-test", Log: log}, deps)
	return &apiFixture{app: app, env: env, branch: env.Branch(t, "Centro")}
}

func bearer(t *testing.T, a authz.Actor) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		AccountID: a.AccountID,
		Email:     a.Email,
		Role:      string(a.Role),
		BranchID:  a.BranchID,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	f := setupAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	f := setupAPI(t)
	resp := f.do(t, http.MethodGet, "/api/invoices", "", nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", body["cause"])
}

func TestAPI_CrearFactura(t *testing.T) {
	f := setupAPI(t)
	_, admin := f.env.Staff(t, f.branch.ID, entity.RoleAdmin)
	cust := f.env.Customer(t, f.branch.ID, time.Now().UTC())
	p := f.env.Product(t, f.branch.ID, "Café 500g", "12500", 10)

	resp := f.do(t, http.MethodPost, "/api/invoices", bearer(t, admin), map[string]any{
		"customer_id": cust.ID,
		"type":        "sale",
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 2}},
	})
	body := decode(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "draft", body["status"])
	assert.Equal(t, float64(2), body["total_items"])
	assert.Equal(t, "25000", body["total_price"])
	assert.Equal(t, f.branch.ID, body["branch_id"])
}

func TestAPI_EmpleadoNoCreaFacturas_Retorna403(t *testing.T) {
	f := setupAPI(t)
	_, emp := f.env.Staff(t, f.branch.ID, entity.RoleEmployee)

	resp := f.do(t, http.MethodPost, "/api/invoices", bearer(t, emp), map[string]any{"type": "sale"})
	body := decode(t, resp)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NOT_ALLOWED", body["cause"])
}

func TestAPI_ValidacionDevuelveCampos(t *testing.T) {
	f := setupAPI(t)
	_, admin := f.env.Staff(t, f.branch.ID, entity.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/invoices", bearer(t, admin), map[string]any{
		"customer_id": "no-es-uuid",
		"type":        "sale",
		"items":       []map[string]any{},
	})
	body := decode(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["cause"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "customer_id")
}

func TestAPI_BodyNoObjeto_Retorna400(t *testing.T) {
	f := setupAPI(t)
	_, admin := f.env.Staff(t, f.branch.ID, entity.RoleAdmin)

	resp := f.do(t, http.MethodPost, "/api/customers", bearer(t, admin), []string{"x"})
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "%v", body)
	assert.Contains(t, fields, "body")
}

func TestAPI_BodyMalformado_SinPermisoRetorna403(t *testing.T) {
	f := setupAPI(t)
	_, employee := f.env.Staff(t, f.branch.ID, entity.RoleEmployee)
	p := f.env.Product(t, f.branch.ID, "Gorra", "10", 3)

	resp := f.do(t, http.MethodPost, "/api/products/"+p.ID+"/stock", bearer(t, employee), []string{"x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+p.ID+"/stock", bytes.NewReader([]byte(`{"delta": `)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, employee))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	got, err := f.env.Repos.Products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stock)
}

func TestAPI_FacturaInexistente_Retorna404(t *testing.T) {
	f := setupAPI(t)
	_, manager := f.env.Staff(t, f.branch.ID, entity.RoleManager)

	resp := f.do(t, http.MethodGet, "/api/invoices/"+uuid.NewString(), bearer(t, manager), nil)
	body := decode(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "INVOICE_NOT_FOUND", body["cause"])
}

func TestAPI_DescargarPDF(t *testing.T) {
	f := setupAPI(t)
	staff, manager := f.env.Staff(t, f.branch.ID, entity.RoleManager)
	cust := f.env.Customer(t, f.branch.ID, time.Now().UTC())
	p := f.env.Product(t, f.branch.ID, "Arroz 1kg", "4200", 10)
	inv := f.env.Invoice(t, f.branch.ID, cust.ID, staff.ID, entity.InvoiceTypeSale, entity.InvoiceStatusPaid, time.Now().UTC(),
		entity.InvoiceItem{ProductID: p.ID, Quantity: 3, Price: p.Price})

	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", bearer(t, manager), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_sale_"+inv.ID[:8]+".pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestAPI_AjusteDeStock(t *testing.T) {
	f := setupAPI(t)
	_, manager := f.env.Staff(t, f.branch.ID, entity.RoleManager)
	p := f.env.Product(t, f.branch.ID, "Panela", "3000", 5)

	resp := f.do(t, http.MethodPost, "/api/products/"+p.ID+"/stock", bearer(t, manager), map[string]any{
		"delta":  -2,
		"reason": "venta mostrador",
	})
	body := decode(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(3), body["stock_after"])

	resp = f.do(t, http.MethodGet, "/api/products/"+p.ID+"/movements", bearer(t, manager), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestAPI_EliminarSucursalVacia_Retorna204(t *testing.T) {
	f := setupAPI(t)
	_, owner := f.env.Staff(t, f.branch.ID, entity.RoleOwner)
	other := f.env.Branch(t, "Norte")

	resp := f.do(t, http.MethodDelete, "/api/branches/"+other.ID, bearer(t, owner), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_Reportes(t *testing.T) {
	f := setupAPI(t)
	_, manager := f.env.Staff(t, f.branch.ID, entity.RoleManager)
	_, emp := f.env.Staff(t, f.branch.ID, entity.RoleEmployee)

	resp := f.do(t, http.MethodGet, "/api/reports?period=week", bearer(t, manager), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/dashboard", bearer(t, manager), nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "date_label")

	resp = f.do(t, http.MethodGet, "/api/reports/sales", bearer(t, emp), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
