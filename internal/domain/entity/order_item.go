package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de producto de un pedido.
type OrderItem struct {
	ID        int64
	OrderID   int64
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal // Quantity × UnitPrice, calculado al guardar
}
