package dashboard

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// Filter coincidencia por subcadena, sin distinguir mayúsculas, sobre name o name_th.
// Consulta vacía devuelve todos los productos en su orden original.
func Filter(products []entity.Product, query string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	if query == "" {
		return append(out, products...)
	}

	// Caser no es seguro entre goroutines: uno por llamada.
	fold := cases.Fold()
	q := fold.String(query)
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), q) ||
			(p.NameTH != "" && strings.Contains(fold.String(p.NameTH), q)) {
			out = append(out, p)
		}
	}
	return out
}
