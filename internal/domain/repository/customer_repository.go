package repository

import "github.com/raizdiseno/crm-pyme/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get devuelven (nil, nil) cuando el registro no existe.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id int64) (*entity.Customer, error)
	GetByName(name string) (*entity.Customer, error)
	GetByRUT(normalizedRUT string) (*entity.Customer, error)
	// List devuelve todos los clientes ordenados por nombre ascendente.
	List() ([]entity.Customer, error)
	Update(customer *entity.Customer) error
	// Delete elimina el cliente; sus pedidos e ítems caen en cascada.
	Delete(id int64) error
}
