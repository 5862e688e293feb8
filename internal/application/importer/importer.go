// Package importer implementa la importación masiva desde la planilla de
// ventas de la tienda. La grilla entra como [][]string (el lector de xlsx
// vive en infraestructura) y todo el trabajo ocurre en una sola transacción:
// si una fila falla, no queda nada a medias en la base.
package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/application/usecase"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
	"github.com/raizdiseno/crm-pyme/pkg/logger"
	"github.com/raizdiseno/crm-pyme/pkg/parse"
)

// Summary cuenta el resultado de una importación.
type Summary struct {
	Rows             int
	Discarded        int
	CustomersCreated int
	CustomersUpdated int
	OrdersCreated    int
	OrdersMatched    int
	ItemsCreated     int
	ItemsSkipped     int
}

// Importer importa la planilla contra los repositorios.
type Importer struct {
	tx  usecase.TxRunner
	log *logger.Logger
}

// New construye el importador.
func New(tx usecase.TxRunner, log *logger.Logger) *Importer {
	return &Importer{tx: tx, log: log}
}

// Import limpia la grilla y crea/actualiza clientes, pedidos e ítems.
//
// Reglas de descarte: filas sin cliente y sin producto, y filas sin fecha
// reconocible. Clientes se calzan por nombre exacto; pedidos por código
// exacto; ítems por la tupla (pedido, producto, cantidad, precio), lo que
// hace la importación re-ejecutable sin duplicar nada.
func (im *Importer) Import(grid [][]string) (Summary, error) {
	runID := uuid.New().String()
	log := im.log.With().Str("run_id", runID).Logger()

	rows, err := Clean(grid)
	if err != nil {
		return Summary{}, err
	}
	log.Info().Int("filas", len(rows)).Msg("planilla limpia, iniciando importación")

	var sum Summary
	sum.Rows = len(rows)

	err = im.tx.Run(func(customers repository.CustomerRepository, orders repository.OrderRepository) error {
		for _, row := range rows {
			if row.Customer == "" && row.Product == "" {
				sum.Discarded++
				continue
			}
			date, err := parse.Date(row.Date)
			if err != nil {
				sum.Discarded++
				continue
			}
			if row.Customer == "" {
				// Sin cliente no hay a quién anclar el pedido.
				sum.Discarded++
				continue
			}

			customer, err := im.upsertCustomer(customers, row, &sum)
			if err != nil {
				return err
			}

			if row.Code == "" {
				sum.Discarded++
				continue
			}
			order, err := im.upsertOrder(orders, row, date, customer.ID, &sum)
			if err != nil {
				return err
			}

			if row.Product == "" {
				continue
			}
			if err := im.appendItem(orders, row, order.ID, &sum); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("importar planilla: %w", err)
	}

	log.Info().
		Int("clientes_nuevos", sum.CustomersCreated).
		Int("pedidos_nuevos", sum.OrdersCreated).
		Int("items_nuevos", sum.ItemsCreated).
		Int("descartadas", sum.Discarded).
		Msg("importación completa")
	return sum, nil
}

// upsertCustomer calza por nombre exacto. Si existe, los datos de contacto
// que vienen en la fila pisan los guardados; si no, se crea.
func (im *Importer) upsertCustomer(customers repository.CustomerRepository, row Row, sum *Summary) (*entity.Customer, error) {
	c, err := customers.GetByName(row.Customer)
	if err != nil {
		return nil, err
	}
	if c == nil {
		now := time.Now()
		c = &entity.Customer{
			Name:      row.Customer,
			Phone:     row.Phone,
			Email:     row.Email,
			Address:   row.Address,
			Comuna:    row.Comuna,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := customers.Create(c); err != nil {
			return nil, err
		}
		sum.CustomersCreated++
		return c, nil
	}

	changed := false
	if row.Phone != "" && row.Phone != c.Phone {
		c.Phone = row.Phone
		changed = true
	}
	if row.Email != "" && row.Email != c.Email {
		c.Email = row.Email
		changed = true
	}
	if row.Address != "" && row.Address != c.Address {
		c.Address = row.Address
		changed = true
	}
	if row.Comuna != "" && row.Comuna != c.Comuna {
		c.Comuna = row.Comuna
		changed = true
	}
	if changed {
		c.UpdatedAt = time.Now()
		if err := customers.Update(c); err != nil {
			return nil, err
		}
		sum.CustomersUpdated++
	}
	return c, nil
}

// upsertOrder calza por código exacto. Si existe solo completa los campos de
// contexto que estaban vacíos; si no, se crea con los montos de la fila.
func (im *Importer) upsertOrder(orders repository.OrderRepository, row Row, date time.Time, customerID int64, sum *Summary) (*entity.Order, error) {
	o, err := orders.GetByCode(row.Code)
	if err != nil {
		return nil, err
	}
	if o != nil {
		changed := false
		if o.Channel == "" && row.Channel != "" {
			o.Channel = row.Channel
			changed = true
		}
		if o.PaymentForm == "" && row.PaymentForm != "" {
			o.PaymentForm = row.PaymentForm
			changed = true
		}
		if o.DocumentType == "" && row.DocumentType != "" {
			o.DocumentType = row.DocumentType
			changed = true
		}
		if changed {
			o.UpdatedAt = time.Now()
			if err := orders.Update(o); err != nil {
				return nil, err
			}
		}
		sum.OrdersMatched++
		return o, nil
	}

	paid := decimal.Zero
	if d, err := parse.Decimal(row.Paid); err == nil {
		paid = d
	}
	balance := decimal.Zero
	if d, err := parse.Decimal(row.Balance); err == nil {
		balance = d
	}

	now := time.Now()
	o = &entity.Order{
		Code:         row.Code,
		CustomerID:   customerID,
		Date:         date,
		Channel:      row.Channel,
		PaymentForm:  row.PaymentForm,
		DocumentType: row.DocumentType,
		Delivery:     row.Delivery,
		Status:       row.Status,
		AmountPaid:   paid,
		Balance:      balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := orders.Create(o); err != nil {
		return nil, err
	}
	sum.OrdersCreated++
	return o, nil
}

// appendItem agrega la línea de producto si su tupla no existe ya en el pedido.
// La planilla no trae precio unitario: queda en cero hasta que se edite.
func (im *Importer) appendItem(orders repository.OrderRepository, row Row, orderID int64, sum *Summary) error {
	qty, err := parse.Int(row.Units)
	if err != nil || qty <= 0 {
		// Regla de limpieza heredada de la planilla: unidades ilegibles valen 1.
		qty = 1
	}

	existing, err := orders.Items(orderID)
	if err != nil {
		return err
	}
	for _, it := range existing {
		if it.Product == row.Product && it.Quantity == qty && it.UnitPrice.IsZero() {
			sum.ItemsSkipped++
			return nil
		}
	}

	item := &entity.OrderItem{
		OrderID:   orderID,
		Product:   row.Product,
		Quantity:  qty,
		UnitPrice: decimal.Zero,
		Total:     decimal.Zero,
	}
	if err := orders.CreateItem(item); err != nil {
		return err
	}
	sum.ItemsCreated++
	return nil
}
