package sqlite

import (
	"fmt"
	"os"

	"github.com/raizdiseno/crm-pyme/internal/application/usecase"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
)

// ReadSnapshot abre un archivo de base externo y vuelca su contenido completo
// para fusionarlo con la base viva. El archivo de origen no se modifica.
func ReadSnapshot(path string) (usecase.StoreSnapshot, error) {
	var snap usecase.StoreSnapshot

	if _, err := os.Stat(path); err != nil {
		return snap, fmt.Errorf("archivo a fusionar: %w", err)
	}

	db, err := Open(path)
	if err != nil {
		return snap, err
	}
	defer db.Close()

	customers := NewCustomerRepository(db)
	orders := NewOrderRepository(db)

	if snap.Customers, err = customers.List(); err != nil {
		return snap, err
	}

	all, err := orders.List()
	if err != nil {
		return snap, err
	}
	snap.Orders = all

	snap.Items = make(map[int64][]entity.OrderItem, len(all))
	for _, o := range all {
		items, err := orders.Items(o.ID)
		if err != nil {
			return snap, err
		}
		if len(items) > 0 {
			snap.Items[o.ID] = items
		}
	}
	return snap, nil
}
