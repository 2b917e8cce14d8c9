package dto

import (
	"bytes"
	"encoding/json"
)

// Number cantidad de un formulario. Acepta "5" y 5 en JSON y se conserva como texto:
// la interpretación (y el mensaje si no es numérica) queda en el orquestador.
type Number string

// UnmarshalJSON acepta cadena, número o null.
func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = Number(num)
	return nil
}

// CreateProductForm cuerpo de POST /api/products.
// Los números pueden llegar como texto, igual que los campos de un formulario.
// El código (sku) no se acepta: lo genera el sistema.
type CreateProductForm struct {
	Name           string `json:"name" validate:"required,max=200"`
	NameTH         string `json:"name_th" validate:"max=200"`
	Category       string `json:"category" validate:"required,oneof=Jasmine White Brown Sticky Specialty"`
	PackSizeKg     Number `json:"pack_size_kg" validate:"required"`
	ReorderPointKg Number `json:"reorder_point_kg"`
}

// CreateTransactionForm cuerpo de POST /api/transactions.
type CreateTransactionForm struct {
	Type      string `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	ProductID string `json:"product_id" validate:"required,uuid_str"`
	QtyKg     Number `json:"qty_kg" validate:"required"`
	Ref       string `json:"ref" validate:"max=200"`
	Note      string `json:"note" validate:"max=1000"`
}

// SearchRequest cuerpo de PUT /api/ui/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// TabRequest cuerpo de PUT /api/ui/tab.
type TabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=overview products transactions sales"`
}

// OpenModalRequest cuerpo de POST /api/ui/modal. Ambos campos son opcionales (preselección).
type OpenModalRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type" validate:"omitempty,oneof=IN OUT ADJUST"`
}
