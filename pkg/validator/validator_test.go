package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rice-stock/pkg/validator"
)

type movimiento struct {
	ProductID string  `validate:"required,uuid_str"`
	QtyKg     float64 `validate:"gt=0"`
}

func TestValidateStruct_Valida(t *testing.T) {
	errs := validator.ValidateStruct(movimiento{ProductID: "6f1c2a3b-0d4e-4f5a-9b8c-7d6e5f4a3b2c", QtyKg: 10})
	assert.Empty(t, errs)
}

func TestValidateStruct_ReportaCampos(t *testing.T) {
	errs := validator.ValidateStruct(movimiento{ProductID: "no-es-uuid", QtyKg: 0})
	require.Len(t, errs, 2)
	assert.Equal(t, "ProductID", errs[0].Field)
	assert.Equal(t, "uuid_str", errs[0].Tag)
	assert.Equal(t, "QtyKg", errs[1].Field)
	assert.Equal(t, "gt", errs[1].Tag)
	assert.Equal(t, "ProductID: uuid_str; QtyKg: gt=0", validator.Summary(errs))
}
