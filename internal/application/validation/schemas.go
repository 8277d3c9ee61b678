package validation

import (
	"strconv"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// Esquemas por entidad y operación. Cada uno recibe el cuerpo crudo y devuelve
// el DTO tipado o un domain.Error con los campos inválidos.

// ── Branch ────────────────────────────────────────────────────────────────────

// branchAttributeRules reglas de las claves conocidas del mapa libre de atributos.
var branchAttributeRules = map[string]string{
	"address": "max=200",
	"city":    "max=80",
	"zip":     "alphanum,max=12",
	"phone":   "min=7,max=20",
	"country": "len=2",
}

func (r *reader) branchAttributes(key string) map[string]any {
	attrs := r.object(key)
	if attrs == nil {
		return nil
	}
	ar := r.nested(key, attrs)
	for name, rule := range branchAttributeRules {
		s := ar.str(name)
		if s == nil || *s == "" {
			continue
		}
		r.errs.checkVar(ar.path(name), *s, rule)
	}
	return attrs
}

// BranchCreate valida la creación de una sucursal.
func BranchCreate(raw map[string]any) (dto.CreateBranchRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateBranchRequest{
		Name:        deref(r.str("name")),
		CompanyCode: deref(r.str("company_code")),
		Website:     deref(r.str("website")),
		Attributes:  r.branchAttributes("attributes"),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// BranchUpdate valida la edición parcial de una sucursal.
func BranchUpdate(raw map[string]any) (dto.UpdateBranchRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateBranchRequest{
		ID:          deref(r.str("id")),
		Name:        r.str("name"),
		CompanyCode: r.str("company_code"),
		Website:     r.str("website"),
		Attributes:  r.branchAttributes("attributes"),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ── Staff ─────────────────────────────────────────────────────────────────────

// StaffCreate valida el alta de un empleado. El rol se normaliza a mayúsculas.
func StaffCreate(raw map[string]any) (dto.CreateStaffRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateStaffRequest{
		BranchID:  deref(r.str("branch_id")),
		FirstName: deref(r.str("first_name")),
		LastName:  deref(r.str("last_name")),
		Email:     deref(r.str("email")),
		Role:      upper(deref(r.str("role"))),
		Active:    true,
	}
	if b := r.boolean("active"); b != nil {
		in.Active = *b
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// StaffUpdate valida la edición parcial de un empleado.
func StaffUpdate(raw map[string]any) (dto.UpdateStaffRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateStaffRequest{
		ID:        deref(r.str("id")),
		FirstName: r.str("first_name"),
		LastName:  r.str("last_name"),
		Email:     r.str("email"),
		Active:    r.boolean("active"),
	}
	if role := r.str("role"); role != nil {
		up := upper(*role)
		in.Role = &up
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ── Customer ──────────────────────────────────────────────────────────────────

// CustomerCreate valida el alta de un cliente.
func CustomerCreate(raw map[string]any) (dto.CreateCustomerRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateCustomerRequest{
		Code:      deref(r.str("code")),
		FirstName: deref(r.str("first_name")),
		LastName:  deref(r.str("last_name")),
		Email:     deref(r.str("email")),
		Phone:     deref(r.str("phone")),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// CustomerUpdate valida la edición parcial de un cliente.
func CustomerUpdate(raw map[string]any) (dto.UpdateCustomerRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateCustomerRequest{
		ID:        deref(r.str("id")),
		Code:      r.str("code"),
		FirstName: r.str("first_name"),
		LastName:  r.str("last_name"),
		Email:     r.str("email"),
		Phone:     r.str("phone"),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ── Category ──────────────────────────────────────────────────────────────────

// CategoryCreate valida el alta de una categoría. active por defecto true.
func CategoryCreate(raw map[string]any) (dto.CreateCategoryRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateCategoryRequest{
		Name:        deref(r.str("name")),
		Description: deref(r.str("description")),
		Active:      true,
	}
	if b := r.boolean("active"); b != nil {
		in.Active = *b
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// CategoryUpdate valida la edición parcial de una categoría.
func CategoryUpdate(raw map[string]any) (dto.UpdateCategoryRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateCategoryRequest{
		ID:          deref(r.str("id")),
		Name:        r.str("name"),
		Description: r.str("description"),
		Active:      r.boolean("active"),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ── Product ───────────────────────────────────────────────────────────────────

// ProductCreate valida el alta de un producto. Moneda por defecto COP.
func ProductCreate(raw map[string]any) (dto.CreateProductRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateProductRequest{
		CategoryID:  deref(r.str("category_id")),
		Name:        deref(r.str("name")),
		Description: deref(r.str("description")),
		Price:       deref(r.dec("price")),
		Stock:       deref(r.integer("stock")),
		Currency:    upper(deref(r.str("currency"))),
		Colors:      r.strs("colors"),
		Available:   true,
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}
	if b := r.boolean("available"); b != nil {
		in.Available = *b
	}
	if _, ok := r.value("price"); !ok {
		errs.Add("price", "es obligatorio")
	}
	if in.Price.IsNegative() {
		errs.Add("price", "debe ser mayor o igual que 0")
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ProductUpdate valida la edición parcial de un producto.
func ProductUpdate(raw map[string]any) (dto.UpdateProductRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateProductRequest{
		ID:          deref(r.str("id")),
		CategoryID:  r.str("category_id"),
		Name:        r.str("name"),
		Description: r.str("description"),
		Price:       r.dec("price"),
		Colors:      r.strs("colors"),
		Available:   r.boolean("available"),
	}
	if c := r.str("currency"); c != nil {
		up := upper(*c)
		in.Currency = &up
	}
	if in.Price != nil && in.Price.IsNegative() {
		errs.Add("price", "debe ser mayor o igual que 0")
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// StockAdjust valida un ajuste de stock.
func StockAdjust(raw map[string]any) (dto.AdjustStockRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.AdjustStockRequest{
		ProductID: deref(r.str("product_id")),
		Delta:     deref(r.integer("delta")),
		Reason:    deref(r.str("reason")),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// ── Invoice ───────────────────────────────────────────────────────────────────

func (r *reader) invoiceItems(key string) []dto.InvoiceItemRequest {
	arr := r.array(key)
	if arr == nil {
		return nil
	}
	items := make([]dto.InvoiceItemRequest, len(arr))
	for i, v := range arr {
		idx := strconv.Itoa(i)
		obj, ok := v.(map[string]any)
		if !ok {
			r.errs.Add(r.path(key)+"."+idx, msgObject)
			continue
		}
		ir := r.nested(key+"."+idx, obj)
		items[i] = dto.InvoiceItemRequest{
			ProductID: deref(ir.str("product_id")),
			Quantity:  deref(ir.integer("quantity")),
		}
	}
	return items
}

// InvoiceCreate valida la creación de una factura. Estado por defecto draft.
func InvoiceCreate(raw map[string]any) (dto.CreateInvoiceRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.CreateInvoiceRequest{
		CustomerID: deref(r.str("customer_id")),
		StaffID:    deref(r.str("staff_id")),
		Type:       lower(deref(r.str("type"))),
		Status:     lower(deref(r.str("status"))),
		Items:      r.invoiceItems("items"),
		ExpiresAt:  r.date("expires_at"),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// InvoiceUpdate valida la edición parcial de una factura.
func InvoiceUpdate(raw map[string]any) (dto.UpdateInvoiceRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.UpdateInvoiceRequest{
		ID:         deref(r.str("id")),
		CustomerID: r.str("customer_id"),
		Items:      r.invoiceItems("items"),
		ExpiresAt:  r.date("expires_at"),
	}
	if s := r.str("status"); s != nil {
		st := lower(*s)
		in.Status = &st
	}
	if _, present := r.value("items"); present && len(in.Items) == 0 {
		errs.Add("items", "debe tener al menos 1 elementos")
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// InvoiceList valida los filtros del listado de facturas.
func InvoiceList(raw map[string]any) (dto.InvoiceFilter, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.InvoiceFilter{
		Status: lower(deref(r.str("status"))),
		Type:   lower(deref(r.str("type"))),
		PageRequest: dto.PageRequest{
			Limit:  int(deref(r.integer("limit"))),
			Offset: int(deref(r.integer("offset"))),
		},
	}
	in.DefaultPage()
	errs.checkVar("status", in.Status, "omitempty,oneof=draft pending paid canceled")
	errs.checkVar("type", in.Type, "omitempty,oneof=sale purchase")
	return in, errs.Err()
}

// ── Reports ───────────────────────────────────────────────────────────────────

// ReportQuery valida los parámetros de reportes. Las fechas no se validan aquí:
// una fecha ilegible degrada al rango por defecto.
func ReportQuery(raw map[string]any) (dto.ReportQuery, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	in := dto.ReportQuery{
		StartDate: deref(r.str("start_date")),
		EndDate:   deref(r.str("end_date")),
		Period:    lower(deref(r.str("period"))),
		BranchID:  deref(r.str("branch_id")),
	}
	errs.checkStruct(in)
	return in, errs.Err()
}

// Page valida limit/offset de un listado simple.
func Page(raw map[string]any) (dto.PageRequest, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	p := dto.PageRequest{
		Limit:  int(deref(r.integer("limit"))),
		Offset: int(deref(r.integer("offset"))),
	}
	p.DefaultPage()
	errs.checkStruct(p)
	return p, errs.Err()
}

// ID valida el identificador de las operaciones por id (get, delete, deactivate).
func ID(raw map[string]any) (string, error) {
	errs := FieldErrors{}
	r := newReader(raw, errs)
	id := deref(r.str("id"))
	errs.checkVar("id", id, "required,uuid")
	return id, errs.Err()
}
