package order

import (
	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
)

// LineTotal calcula el total de una línea: cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ItemsTotal suma los totales de todas las líneas.
func ItemsTotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.UnitPrice))
	}
	return total
}

// Balance calcula el saldo pendiente de un pedido:
// max(0, Σ totales de línea − abono). Nunca es negativo.
func Balance(items []entity.OrderItem, amountPaid decimal.Decimal) decimal.Decimal {
	saldo := ItemsTotal(items).Sub(amountPaid)
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}
