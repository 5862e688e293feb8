package dto

import (
	"time"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/pkg/rut"
)

// CreateCustomerRequest datos para crear un cliente.
// Name y RUT son obligatorios; el resto puede venir vacío.
type CreateCustomerRequest struct {
	Name    string
	RUT     string
	Phone   string
	Email   string
	Address string
	Comuna  string
}

// UpdateCustomerRequest datos para editar un cliente existente.
type UpdateCustomerRequest struct {
	Name    string
	RUT     string
	Phone   string
	Email   string
	Address string
	Comuna  string
}

// CustomerResponse representación de salida de un cliente.
type CustomerResponse struct {
	ID        int64
	Name      string
	RUT       string // formateado: 12.345.678-5
	Phone     string
	Email     string
	Address   string
	Comuna    string
	CreatedAt time.Time
}

// ToCustomerResponse convierte la entidad a su representación de salida.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	formatted := ""
	if c.RUT != "" {
		formatted = rut.Format(c.RUT)
	}
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		RUT:       formatted,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Comuna:    c.Comuna,
		CreatedAt: c.CreatedAt,
	}
}
