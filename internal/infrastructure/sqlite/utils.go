package sqlite

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// isUniqueViolation verifica si un error es una violación de índice único.
// El driver no expone un tipo de error propio, así que se inspecciona el mensaje.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Los montos se guardan como TEXT para no perder precisión decimal.

func scanDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	return d, nil
}
