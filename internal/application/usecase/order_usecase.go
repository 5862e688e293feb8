package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/application/dto"
	"github.com/raizdiseno/crm-pyme/internal/domain"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	ordercalc "github.com/raizdiseno/crm-pyme/internal/domain/order"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
	"github.com/raizdiseno/crm-pyme/internal/domain/search"
)

// OrderUseCase casos de uso del libro de pedidos.
type OrderUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	tx        TxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, tx TxRunner) *OrderUseCase {
	return &OrderUseCase{orders: orders, customers: customers, tx: tx}
}

// Create crea un pedido con código generado para su fecha.
// Si la generación falla (incluido el correlativo diario agotado) el pedido
// no se crea: el error llega entero al que llamó, sin códigos de relleno.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: debes seleccionar un cliente", domain.ErrInvalidInput)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	code, err := uc.generateCode(date)
	if err != nil {
		return nil, fmt.Errorf("generar número de pedido: %w", err)
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.StatusPendiente
	}

	balance := decimal.Zero
	if in.Balance != nil {
		balance = *in.Balance
	}

	now := time.Now()
	o := &entity.Order{
		Code:         code,
		CustomerID:   in.CustomerID,
		Date:         date,
		Channel:      strings.TrimSpace(in.Channel),
		PaymentForm:  strings.TrimSpace(in.PaymentForm),
		DocumentType: strings.TrimSpace(in.DocumentType),
		Delivery:     strings.TrimSpace(in.Delivery),
		Status:       status,
		AmountPaid:   in.AmountPaid,
		Balance:      balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orders.Create(o); err != nil {
		return nil, err
	}
	o.CustomerName = customer.Name
	o.CustomerPhone = customer.Phone
	return dto.ToOrderResponse(o), nil
}

// generateCode consulta el mayor código del día y le suma uno al correlativo.
func (uc *OrderUseCase) generateCode(date time.Time) (string, error) {
	prefix := ordercalc.CodePrefix(date) + "-"
	last, err := uc.orders.LastCodeWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	return ordercalc.NextCode(date, last)
}

// Update edita un pedido. El código nunca cambia. Con Balance nil el saldo
// se recalcula desde los ítems; con Balance presente se respeta el valor
// escrito (saldo forzado manualmente).
func (uc *OrderUseCase) Update(id int64, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: debes seleccionar un cliente", domain.ErrInvalidInput)
	}

	o.CustomerID = in.CustomerID
	if !in.Date.IsZero() {
		o.Date = in.Date
	}
	o.Channel = strings.TrimSpace(in.Channel)
	o.PaymentForm = strings.TrimSpace(in.PaymentForm)
	o.DocumentType = strings.TrimSpace(in.DocumentType)
	o.Delivery = strings.TrimSpace(in.Delivery)
	if s := strings.TrimSpace(in.Status); s != "" {
		o.Status = s
	}
	o.AmountPaid = in.AmountPaid

	if in.Balance != nil {
		o.Balance = *in.Balance
	} else {
		items, err := uc.orders.Items(id)
		if err != nil {
			return nil, err
		}
		o.Balance = ordercalc.Balance(items, o.AmountPaid)
	}
	o.UpdatedAt = time.Now()

	if err := uc.orders.Update(o); err != nil {
		return nil, err
	}
	o.CustomerName = customer.Name
	o.CustomerPhone = customer.Phone
	return dto.ToOrderResponse(o), nil
}

// Delete elimina un pedido y sus ítems (cascada).
func (uc *OrderUseCase) Delete(id int64) error {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	return uc.orders.Delete(id)
}

// Get obtiene un pedido con sus ítems.
func (uc *OrderUseCase) Get(id int64) (*dto.OrderResponse, []dto.ItemResponse, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.orders.Items(id)
	if err != nil {
		return nil, nil, err
	}
	return dto.ToOrderResponse(o), dto.ToItemResponses(items), nil
}

// List devuelve todos los pedidos, fecha descendente.
func (uc *OrderUseCase) List() ([]dto.OrderResponse, error) {
	return uc.Search(search.OrderFilter{Mode: search.OrdersAll})
}

// Search carga la instantánea completa y la filtra en memoria según el modo.
func (uc *OrderUseCase) Search(f search.OrderFilter) ([]dto.OrderResponse, error) {
	snapshot, err := uc.orders.List()
	if err != nil {
		return nil, err
	}
	matched := search.Orders(snapshot, f)
	out := make([]dto.OrderResponse, 0, len(matched))
	for i := range matched {
		out = append(out, *dto.ToOrderResponse(&matched[i]))
	}
	return out, nil
}

// SaveItems guarda la grilla completa de ítems de un pedido en una
// transacción: crea filas sin ID, actualiza las existentes y elimina las que
// ya no vienen. Al final recalcula el saldo del pedido con el abono vigente.
func (uc *OrderUseCase) SaveItems(orderID int64, rows []dto.ItemInput) ([]dto.ItemResponse, error) {
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}

	// Validación completa antes de escribir nada.
	for _, row := range rows {
		if strings.TrimSpace(row.Product) == "" {
			continue
		}
		if row.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad de %q debe ser mayor que cero", domain.ErrInvalidInput, row.Product)
		}
		if row.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio de %q no puede ser negativo", domain.ErrInvalidInput, row.Product)
		}
	}

	var saved []entity.OrderItem
	err = uc.tx.Run(func(_ repository.CustomerRepository, orders repository.OrderRepository) error {
		existing, err := orders.Items(orderID)
		if err != nil {
			return err
		}
		byID := make(map[int64]entity.OrderItem, len(existing))
		for _, it := range existing {
			byID[it.ID] = it
		}

		for _, row := range rows {
			product := strings.TrimSpace(row.Product)
			if product == "" {
				// Fila sin producto: no se guarda.
				continue
			}
			item := entity.OrderItem{
				ID:        row.ID,
				OrderID:   orderID,
				Product:   product,
				Quantity:  row.Quantity,
				UnitPrice: row.UnitPrice,
				Total:     ordercalc.LineTotal(row.Quantity, row.UnitPrice),
			}
			if _, ok := byID[row.ID]; row.ID != 0 && ok {
				if err := orders.UpdateItem(&item); err != nil {
					return err
				}
				delete(byID, row.ID)
			} else {
				item.ID = 0
				if err := orders.CreateItem(&item); err != nil {
					return err
				}
			}
			saved = append(saved, item)
		}

		// Lo que quedó en el mapa ya no está en la grilla: se elimina.
		for id := range byID {
			if err := orders.DeleteItem(id); err != nil {
				return err
			}
		}

		return orders.UpdateBalance(orderID, ordercalc.Balance(saved, o.AmountPaid))
	})
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponses(saved), nil
}
