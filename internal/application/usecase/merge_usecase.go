package usecase

import (
	"strings"
	"time"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
	"github.com/raizdiseno/crm-pyme/pkg/rut"
)

// StoreSnapshot es el contenido completo de un archivo de base de datos
// externo (un respaldo u otra copia de la aplicación) leído para fusionar.
// Las referencias (CustomerID, claves de Items) usan los IDs del archivo
// de origen, no los de la base viva.
type StoreSnapshot struct {
	Customers []entity.Customer
	Orders    []entity.Order
	Items     map[int64][]entity.OrderItem // por ID de pedido de origen
}

// MergeSummary cuenta lo que la fusión creó y lo que ya existía.
type MergeSummary struct {
	CustomersCreated int
	CustomersMatched int
	OrdersCreated    int
	OrdersSkipped    int
	ItemsCreated     int
	ItemsSkipped     int
}

// MergeUseCase fusiona los registros de un archivo externo en la base viva.
type MergeUseCase struct {
	tx TxRunner
}

// NewMergeUseCase construye el caso de uso.
func NewMergeUseCase(tx TxRunner) *MergeUseCase {
	return &MergeUseCase{tx: tx}
}

// Merge incorpora el snapshot en una sola transacción, deduplicando:
// clientes por RUT normalizado y, a falta de RUT, por nombre exacto;
// pedidos por código; ítems por la tupla (pedido, producto, cantidad, precio).
func (uc *MergeUseCase) Merge(snap StoreSnapshot) (MergeSummary, error) {
	var sum MergeSummary

	err := uc.tx.Run(func(customers repository.CustomerRepository, orders repository.OrderRepository) error {
		// Clientes: mapear ID de origen -> ID vivo.
		customerID := make(map[int64]int64, len(snap.Customers))
		for i := range snap.Customers {
			src := snap.Customers[i]

			var live *entity.Customer
			var err error
			if src.RUT != "" {
				live, err = customers.GetByRUT(rut.Normalize(src.RUT))
				if err != nil {
					return err
				}
			}
			if live == nil {
				live, err = customers.GetByName(strings.TrimSpace(src.Name))
				if err != nil {
					return err
				}
			}

			if live != nil {
				customerID[src.ID] = live.ID
				sum.CustomersMatched++
				continue
			}

			now := time.Now()
			created := &entity.Customer{
				Name:      strings.TrimSpace(src.Name),
				RUT:       rut.Normalize(src.RUT),
				Phone:     src.Phone,
				Email:     src.Email,
				Address:   src.Address,
				Comuna:    src.Comuna,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := customers.Create(created); err != nil {
				return err
			}
			customerID[src.ID] = created.ID
			sum.CustomersCreated++
		}

		// Pedidos: por código. Los existentes se conservan tal cual,
		// pero sus ítems igual se fusionan.
		for i := range snap.Orders {
			src := snap.Orders[i]

			liveID := int64(0)
			existing, err := orders.GetByCode(src.Code)
			if err != nil {
				return err
			}
			if existing != nil {
				liveID = existing.ID
				sum.OrdersSkipped++
			} else {
				ownerID, ok := customerID[src.CustomerID]
				if !ok {
					// Pedido huérfano en el archivo de origen: no se puede anclar.
					continue
				}
				now := time.Now()
				created := &entity.Order{
					Code:         src.Code,
					CustomerID:   ownerID,
					Date:         src.Date,
					Channel:      src.Channel,
					PaymentForm:  src.PaymentForm,
					DocumentType: src.DocumentType,
					Delivery:     src.Delivery,
					Status:       src.Status,
					AmountPaid:   src.AmountPaid,
					Balance:      src.Balance,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if err := orders.Create(created); err != nil {
					return err
				}
				liveID = created.ID
				sum.OrdersCreated++
			}

			liveItems, err := orders.Items(liveID)
			if err != nil {
				return err
			}
			for _, it := range snap.Items[src.ID] {
				if containsItem(liveItems, it) {
					sum.ItemsSkipped++
					continue
				}
				newItem := entity.OrderItem{
					OrderID:   liveID,
					Product:   it.Product,
					Quantity:  it.Quantity,
					UnitPrice: it.UnitPrice,
					Total:     it.Total,
				}
				if err := orders.CreateItem(&newItem); err != nil {
					return err
				}
				liveItems = append(liveItems, newItem)
				sum.ItemsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return MergeSummary{}, err
	}
	return sum, nil
}

// containsItem busca la tupla (producto, cantidad, precio) entre los ítems vivos.
func containsItem(items []entity.OrderItem, candidate entity.OrderItem) bool {
	for _, it := range items {
		if it.Product == candidate.Product &&
			it.Quantity == candidate.Quantity &&
			it.UnitPrice.Equal(candidate.UnitPrice) {
			return true
		}
	}
	return false
}
