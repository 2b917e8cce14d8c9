package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/infrastructure/metrics"
	"github.com/jhoicas/rice-stock/pkg/validator"
)

// SKUPrefix prefijo del código generado para productos nuevos.
const SKUPrefix = "RICE-"

// Mensajes mostrados al usuario cuando el formulario no se puede enviar.
const (
	msgNameRequired    = "กรุณาระบุชื่อสินค้า"
	msgCategoryInvalid = "หมวดหมู่ไม่ถูกต้อง"
	msgPackSizeInvalid = "ขนาดบรรจุต้องมากกว่า 0"
	msgProductRequired = "กรุณาเลือกสินค้า"
	msgTypeInvalid     = "ประเภทรายการไม่ถูกต้อง"
	msgQtyInvalid      = "จำนวนต้องมากกว่า 0"
	msgFormInvalid     = "ข้อมูลไม่ถูกต้อง"
)

// SubmitError fallo de un envío. Message se muestra tal cual; Kind es el error de dominio.
type SubmitError struct {
	Kind    error
	Message string
}

func (e *SubmitError) Error() string { return e.Message }
func (e *SubmitError) Unwrap() error { return e.Kind }

func submitErr(kind error, msg string) *SubmitError {
	return &SubmitError{Kind: kind, Message: msg}
}

// SubmitProduct crea un producto. Éxito: vuelve al panel y recarga todo.
// Fallo: devuelve *SubmitError y el estado retenido no cambia.
func (o *Orchestrator) SubmitProduct(ctx context.Context, form dto.CreateProductForm) error {
	if !o.LoggedIn() {
		return submitErr(domain.ErrUnauthorized, AuthFailedMessage)
	}
	p, serr := o.buildProduct(form)
	if serr != nil {
		metrics.MutationsTotal.WithLabelValues("product", "invalid").Inc()
		return serr
	}

	if err := o.repo.CreateProduct(ctx, p); err != nil {
		metrics.MutationsTotal.WithLabelValues("product", "rejected").Inc()
		o.log.Warn().Err(err).Str("sku", p.SKU).Msg("alta de producto rechazada")
		return submitErr(kindOf(err), userMessage(err))
	}

	metrics.MutationsTotal.WithLabelValues("product", "ok").Inc()
	o.log.Info().Str("sku", p.SKU).Str("name", p.Name).Msg("producto creado")
	o.dispatch(tabSet(TabOverview))
	_ = o.RefreshAll(ctx)
	return nil
}

func (o *Orchestrator) buildProduct(form dto.CreateProductForm) (entity.NewProduct, *SubmitError) {
	form.Name = strings.TrimSpace(form.Name)
	form.NameTH = strings.TrimSpace(form.NameTH)

	if errs := validator.ValidateStruct(form); len(errs) > 0 {
		switch errs[0].Field {
		case "Name":
			return entity.NewProduct{}, submitErr(domain.ErrInvalidInput, msgNameRequired)
		case "Category":
			return entity.NewProduct{}, submitErr(domain.ErrInvalidInput, msgCategoryInvalid)
		case "PackSizeKg":
			return entity.NewProduct{}, submitErr(domain.ErrInvalidInput, msgPackSizeInvalid)
		}
		return entity.NewProduct{}, submitErr(domain.ErrInvalidInput, msgFormInvalid+": "+validator.Summary(errs))
	}

	packSize, err := decimal.NewFromString(strings.TrimSpace(string(form.PackSizeKg)))
	if err != nil || !packSize.IsPositive() {
		return entity.NewProduct{}, submitErr(domain.ErrInvalidInput, msgPackSizeInvalid)
	}

	return entity.NewProduct{
		SKU:            fmt.Sprintf("%s%d", SKUPrefix, o.now().UnixMilli()),
		Name:           form.Name,
		NameTH:         form.NameTH,
		Category:       entity.Category(form.Category),
		PackSizeKg:     packSize,
		ReorderPointKg: parseReorderPoint(string(form.ReorderPointKg)),
	}, nil
}

// parseReorderPoint ausente, inválido o negativo -> 0 (sin alerta).
func parseReorderPoint(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// SubmitTransaction registra un movimiento vía el procedimiento validador del almacén.
// No se anticipa si hay stock suficiente: el resultado del almacén es la única autoridad.
// Éxito: cierra el modal y recarga. Fallo: el modal sigue abierto y el estado no cambia.
func (o *Orchestrator) SubmitTransaction(ctx context.Context, form dto.CreateTransactionForm) error {
	if !o.LoggedIn() {
		return submitErr(domain.ErrUnauthorized, AuthFailedMessage)
	}
	t, serr := buildTransaction(form)
	if serr != nil {
		metrics.MutationsTotal.WithLabelValues("transaction", "invalid").Inc()
		return serr
	}

	res, err := o.repo.CreateTransaction(ctx, t)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("transaction", "error").Inc()
		o.log.Error().Err(err).Str("product_id", t.ProductID).Msg("crear movimiento")
		return submitErr(kindOf(err), userMessage(err))
	}
	if !res.Success {
		metrics.MutationsTotal.WithLabelValues("transaction", "rejected").Inc()
		o.log.Warn().
			Str("product_id", t.ProductID).
			Str("type", string(t.Type)).
			Str("qty_kg", t.QtyKg.String()).
			Str("reason", res.Error).
			Msg("movimiento rechazado por el almacén")
		return submitErr(domain.ErrRejected, res.Error)
	}

	metrics.MutationsTotal.WithLabelValues("transaction", "ok").Inc()
	o.dispatch(modalClosed())
	_ = o.RefreshAll(ctx)
	return nil
}

func buildTransaction(form dto.CreateTransactionForm) (entity.NewTransaction, *SubmitError) {
	form.ProductID = strings.TrimSpace(form.ProductID)
	if errs := validator.ValidateStruct(form); len(errs) > 0 {
		switch errs[0].Field {
		case "Type":
			return entity.NewTransaction{}, submitErr(domain.ErrInvalidInput, msgTypeInvalid)
		case "ProductID":
			return entity.NewTransaction{}, submitErr(domain.ErrInvalidInput, msgProductRequired)
		case "QtyKg":
			return entity.NewTransaction{}, submitErr(domain.ErrInvalidInput, msgQtyInvalid)
		}
		return entity.NewTransaction{}, submitErr(domain.ErrInvalidInput, msgFormInvalid+": "+validator.Summary(errs))
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(string(form.QtyKg)))
	if err != nil || !qty.IsPositive() {
		return entity.NewTransaction{}, submitErr(domain.ErrInvalidInput, msgQtyInvalid)
	}

	return entity.NewTransaction{
		Type:      entity.TxnType(form.Type),
		ProductID: form.ProductID,
		QtyKg:     qty,
		Ref:       optional(form.Ref),
		Note:      optional(form.Note),
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// kindOf conserva el error de dominio si el adaptador lo envolvió.
func kindOf(err error) error {
	for _, k := range []error{domain.ErrDuplicate, domain.ErrInvalidInput, domain.ErrInsufficientStock, domain.ErrNotFound, domain.ErrRejected} {
		if errors.Is(err, k) {
			return k
		}
	}
	return err
}

// userMessage el mensaje del almacén sin el prefijo del sentinel.
func userMessage(err error) string {
	msg := err.Error()
	for _, k := range []error{domain.ErrDuplicate, domain.ErrInvalidInput, domain.ErrRejected} {
		if p := k.Error() + ": "; errors.Is(err, k) && strings.HasPrefix(msg, p) {
			return strings.TrimPrefix(msg, p)
		}
	}
	return msg
}
