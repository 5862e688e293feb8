package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/raizdiseno/crm-pyme/internal/domain"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con db o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar db o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, rut, phone, email, address, comuna, created_at, updated_at`

// Create persiste un nuevo cliente y deja el ID asignado en la entidad.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (name, rut, phone, email, address, comuna, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.Exec(query,
		customer.Name, customer.RUT, customer.Phone, customer.Email,
		customer.Address, customer.Comuna, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	customer.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	row := r.q.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row, "get customer")
}

// GetByName obtiene un cliente por nombre exacto.
func (r *CustomerRepo) GetByName(name string) (*entity.Customer, error) {
	row := r.q.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE name = ?`, name)
	return scanCustomer(row, "get customer by name")
}

// GetByRUT obtiene un cliente por RUT normalizado.
func (r *CustomerRepo) GetByRUT(normalizedRUT string) (*entity.Customer, error) {
	row := r.q.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE rut = ? AND rut <> ''`, normalizedRUT)
	return scanCustomer(row, "get customer by rut")
}

// List devuelve todos los clientes ordenados por nombre.
func (r *CustomerRepo) List() ([]entity.Customer, error) {
	rows, err := r.q.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.RUT, &c.Phone, &c.Email, &c.Address, &c.Comuna, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = ?, rut = ?, phone = ?, email = ?, address = ?, comuna = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.q.Exec(query,
		customer.Name, customer.RUT, customer.Phone, customer.Email,
		customer.Address, customer.Comuna, customer.UpdatedAt, customer.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente; los pedidos e ítems caen por el ON DELETE CASCADE.
func (r *CustomerRepo) Delete(id int64) error {
	if _, err := r.q.Exec(`DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row *sql.Row, op string) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.RUT, &c.Phone, &c.Email, &c.Address, &c.Comuna, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
