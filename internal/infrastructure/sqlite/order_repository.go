package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/domain"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con db o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar db o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, code, customer_id, date, channel, payment_form, document_type,
	delivery, status, amount_paid, balance, created_at, updated_at`

// Create persiste un nuevo pedido y deja el ID asignado en la entidad.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (code, customer_id, date, channel, payment_form, document_type,
			delivery, status, amount_paid, balance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.Exec(query,
		order.Code, order.CustomerID, order.Date, order.Channel, order.PaymentForm,
		order.DocumentType, order.Delivery, order.Status,
		order.AmountPaid.String(), order.Balance.String(),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	row := r.q.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row, "get order")
}

// GetByCode obtiene un pedido por su código.
func (r *OrderRepo) GetByCode(code string) (*entity.Order, error) {
	row := r.q.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE code = ?`, code)
	return scanOrder(row, "get order by code")
}

// List devuelve todos los pedidos, fecha descendente, con nombre y teléfono del cliente.
func (r *OrderRepo) List() ([]entity.Order, error) {
	query := `
		SELECT o.id, o.code, o.customer_id, o.date, o.channel, o.payment_form, o.document_type,
			o.delivery, o.status, o.amount_paid, o.balance, o.created_at, o.updated_at,
			c.name, c.phone
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.date DESC, o.code DESC`
	rows, err := r.q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		var (
			o             entity.Order
			paid, balance string
		)
		if err := rows.Scan(&o.ID, &o.Code, &o.CustomerID, &o.Date, &o.Channel, &o.PaymentForm,
			&o.DocumentType, &o.Delivery, &o.Status, &paid, &balance,
			&o.CreatedAt, &o.UpdatedAt, &o.CustomerName, &o.CustomerPhone); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.AmountPaid, err = scanDecimal(paid); err != nil {
			return nil, err
		}
		if o.Balance, err = scanDecimal(balance); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// ListByCustomer devuelve el historial de compras de un cliente, fecha descendente.
func (r *OrderRepo) ListByCustomer(customerID int64) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = ? ORDER BY date DESC, code DESC`
	rows, err := r.q.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		o, err := scanOrderRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

// LastCodeWithPrefix devuelve el mayor código que empieza con prefix, o "" si no hay.
func (r *OrderRepo) LastCodeWithPrefix(prefix string) (string, error) {
	var code string
	err := r.q.QueryRow(
		`SELECT code FROM orders WHERE code LIKE ? ORDER BY code DESC LIMIT 1`,
		prefix+"%",
	).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last code: %w", err)
	}
	return code, nil
}

// Update actualiza un pedido. El código nunca se toca.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET customer_id = ?, date = ?, channel = ?, payment_form = ?,
			document_type = ?, delivery = ?, status = ?, amount_paid = ?, balance = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.q.Exec(query,
		order.CustomerID, order.Date, order.Channel, order.PaymentForm,
		order.DocumentType, order.Delivery, order.Status,
		order.AmountPaid.String(), order.Balance.String(), order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// UpdateBalance fija el saldo calculado de un pedido.
func (r *OrderRepo) UpdateBalance(id int64, balance decimal.Decimal) error {
	if _, err := r.q.Exec(`UPDATE orders SET balance = ? WHERE id = ?`, balance.String(), id); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// Delete elimina un pedido; sus ítems caen por el ON DELETE CASCADE.
func (r *OrderRepo) Delete(id int64) error {
	if _, err := r.q.Exec(`DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// Items devuelve las líneas de producto de un pedido.
func (r *OrderRepo) Items(orderID int64) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, product, quantity, unit_price, total
		FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.q.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []entity.OrderItem
	for rows.Next() {
		var (
			it           entity.OrderItem
			price, total string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Product, &it.Quantity, &price, &total); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.UnitPrice, err = scanDecimal(price); err != nil {
			return nil, err
		}
		if it.Total, err = scanDecimal(total); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// CreateItem persiste una línea de producto y deja el ID asignado.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	res, err := r.q.Exec(
		`INSERT INTO order_items (order_id, product, quantity, unit_price, total) VALUES (?, ?, ?, ?, ?)`,
		item.OrderID, item.Product, item.Quantity, item.UnitPrice.String(), item.Total.String(),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem actualiza una línea de producto.
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	_, err := r.q.Exec(
		`UPDATE order_items SET product = ?, quantity = ?, unit_price = ?, total = ? WHERE id = ?`,
		item.Product, item.Quantity, item.UnitPrice.String(), item.Total.String(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea de producto.
func (r *OrderRepo) DeleteItem(id int64) error {
	if _, err := r.q.Exec(`DELETE FROM order_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanOrder(row *sql.Row, op string) (*entity.Order, error) {
	var (
		o             entity.Order
		paid, balance string
	)
	err := row.Scan(&o.ID, &o.Code, &o.CustomerID, &o.Date, &o.Channel, &o.PaymentForm,
		&o.DocumentType, &o.Delivery, &o.Status, &paid, &balance, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if o.AmountPaid, err = scanDecimal(paid); err != nil {
		return nil, err
	}
	if o.Balance, err = scanDecimal(balance); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderRows(rows *sql.Rows) (*entity.Order, error) {
	var (
		o             entity.Order
		paid, balance string
	)
	err := rows.Scan(&o.ID, &o.Code, &o.CustomerID, &o.Date, &o.Channel, &o.PaymentForm,
		&o.DocumentType, &o.Delivery, &o.Status, &paid, &balance, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if o.AmountPaid, err = scanDecimal(paid); err != nil {
		return nil, err
	}
	if o.Balance, err = scanDecimal(balance); err != nil {
		return nil, err
	}
	return &o, nil
}
