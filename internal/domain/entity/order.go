package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un pedido.
const (
	StatusPendiente   = "Pendiente"
	StatusPreparacion = "Preparación"
	StatusListo       = "Listo para despacho"
	StatusEnDespacho  = "En despacho"
	StatusEntregado   = "Entregado"
	StatusCancelado   = "Cancelado"
)

// OrderStatuses lista los estados en el orden del flujo de venta.
var OrderStatuses = []string{
	StatusPendiente,
	StatusPreparacion,
	StatusListo,
	StatusEnDespacho,
	StatusEntregado,
	StatusCancelado,
}

// Order representa un pedido de un cliente.
// Code es el número de pedido (PYYYYMMDD-XXX): único e inmutable una vez asignado.
type Order struct {
	ID           int64
	Code         string
	CustomerID   int64
	Date         time.Time
	Channel      string // canal de venta
	PaymentForm  string // forma de pago
	DocumentType string // boleta, factura
	Delivery     string // retiro en tienda / despacho a domicilio
	Status       string
	AmountPaid   decimal.Decimal // abono
	Balance      decimal.Decimal // saldo
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Datos del cliente cargados por el join de los listados.
	CustomerName  string
	CustomerPhone string
}
