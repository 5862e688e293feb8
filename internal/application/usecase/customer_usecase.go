package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/raizdiseno/crm-pyme/internal/application/dto"
	"github.com/raizdiseno/crm-pyme/internal/domain"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
	"github.com/raizdiseno/crm-pyme/internal/domain/search"
	"github.com/raizdiseno/crm-pyme/pkg/rut"
)

// CustomerUseCase casos de uso del directorio de clientes.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, orders repository.OrderRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, orders: orders}
}

// Create crea un cliente. Nombre y RUT son obligatorios; el RUT se valida
// (módulo 11) y se rechaza si otro cliente ya lo tiene registrado.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.RUT) == "" {
		return nil, fmt.Errorf("%w: el RUT es obligatorio", domain.ErrInvalidInput)
	}
	if err := rut.Validate(in.RUT); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	normalized := rut.Normalize(in.RUT)
	existing, err := uc.customers.GetByRUT(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrRUTExists, existing.Name, rut.Format(existing.RUT))
	}

	now := time.Now()
	c := &entity.Customer{
		Name:      name,
		RUT:       normalized,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Comuna:    strings.TrimSpace(in.Comuna),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(c); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(c), nil
}

// Update edita un cliente existente. El nombre sigue siendo obligatorio;
// el RUT puede quedar vacío, pero si viene se valida y no puede chocar con
// el de otro cliente.
func (uc *CustomerUseCase) Update(id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}

	normalized := ""
	if strings.TrimSpace(in.RUT) != "" {
		if err := rut.Validate(in.RUT); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		normalized = rut.Normalize(in.RUT)
		other, err := uc.customers.GetByRUT(normalized)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrRUTExists, other.Name, rut.Format(other.RUT))
		}
	}

	c.Name = name
	c.RUT = normalized
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	c.Comuna = strings.TrimSpace(in.Comuna)
	c.UpdatedAt = time.Now()

	if err := uc.customers.Update(c); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(c), nil
}

// Delete elimina un cliente. Sus pedidos y los ítems de esos pedidos se
// eliminan en cascada.
func (uc *CustomerUseCase) Delete(id int64) error {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.customers.Delete(id)
}

// Get obtiene un cliente por ID.
func (uc *CustomerUseCase) Get(id int64) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCustomerResponse(c), nil
}

// List devuelve todos los clientes, nombre ascendente.
func (uc *CustomerUseCase) List() ([]dto.CustomerResponse, error) {
	return uc.Search("")
}

// Search carga la instantánea completa y la filtra en memoria por subcadena
// sobre nombre, teléfono, correo o comuna (sin distinguir mayúsculas ni tildes).
func (uc *CustomerUseCase) Search(text string) ([]dto.CustomerResponse, error) {
	snapshot, err := uc.customers.List()
	if err != nil {
		return nil, err
	}
	matched := search.Customers(snapshot, text)
	out := make([]dto.CustomerResponse, 0, len(matched))
	for i := range matched {
		out = append(out, *dto.ToCustomerResponse(&matched[i]))
	}
	return out, nil
}

// History devuelve el historial de compras de un cliente, fecha descendente.
func (uc *CustomerUseCase) History(customerID int64) ([]dto.OrderResponse, error) {
	c, err := uc.customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	orders, err := uc.orders.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *dto.ToOrderResponse(&orders[i]))
	}
	return out, nil
}
