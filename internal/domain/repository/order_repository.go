package repository

import (
	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus ítems.
// Los Get devuelven (nil, nil) cuando el registro no existe.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id int64) (*entity.Order, error)
	GetByCode(code string) (*entity.Order, error)
	// List devuelve todos los pedidos, fecha descendente, con nombre y
	// teléfono del cliente ya resueltos por join.
	List() ([]entity.Order, error)
	// ListByCustomer devuelve el historial de compras de un cliente, fecha descendente.
	ListByCustomer(customerID int64) ([]entity.Order, error)
	// LastCodeWithPrefix devuelve el mayor código (orden lexicográfico) que
	// empiece con prefix, o "" si no hay ninguno.
	LastCodeWithPrefix(prefix string) (string, error)
	// Update no toca el código: una vez asignado es inmutable.
	Update(order *entity.Order) error
	UpdateBalance(id int64, balance decimal.Decimal) error
	Delete(id int64) error

	Items(orderID int64) ([]entity.OrderItem, error)
	CreateItem(item *entity.OrderItem) error
	UpdateItem(item *entity.OrderItem) error
	DeleteItem(id int64) error
}
