package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
)

// CreateOrderRequest datos para crear un pedido. El código no se pide:
// se genera con la fecha del pedido y es inmutable.
type CreateOrderRequest struct {
	CustomerID   int64
	Date         time.Time
	Channel      string
	PaymentForm  string
	DocumentType string
	Delivery     string
	Status       string
	AmountPaid   decimal.Decimal
	// Balance opcional: nil deja el saldo calculado a partir de los ítems.
	Balance *decimal.Decimal
}

// UpdateOrderRequest datos para editar un pedido. El código no aparece:
// una vez asignado no se puede cambiar.
type UpdateOrderRequest struct {
	CustomerID   int64
	Date         time.Time
	Channel      string
	PaymentForm  string
	DocumentType string
	Delivery     string
	Status       string
	AmountPaid   decimal.Decimal
	Balance      *decimal.Decimal
}

// ItemInput una fila de la grilla de ítems. ID cero significa fila nueva.
type ItemInput struct {
	ID        int64
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderResponse representación de salida de un pedido.
type OrderResponse struct {
	ID            int64
	Code          string
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	Date          time.Time
	Channel       string
	PaymentForm   string
	DocumentType  string
	Delivery      string
	Status        string
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
}

// ItemResponse representación de salida de una línea de pedido.
type ItemResponse struct {
	ID        int64
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// ToOrderResponse convierte la entidad a su representación de salida.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		Code:          o.Code,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Date:          o.Date,
		Channel:       o.Channel,
		PaymentForm:   o.PaymentForm,
		DocumentType:  o.DocumentType,
		Delivery:      o.Delivery,
		Status:        o.Status,
		AmountPaid:    o.AmountPaid,
		Balance:       o.Balance,
	}
}

// ToItemResponses convierte las líneas de un pedido.
func ToItemResponses(items []entity.OrderItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemResponse{
			ID:        it.ID,
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return out
}
