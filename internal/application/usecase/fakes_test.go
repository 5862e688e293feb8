package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
)

// Dobles en memoria de los repositorios, para probar los casos de uso sin
// base de datos.

type fakeCustomers struct {
	nextID int64
	rows   []*entity.Customer
}

func (f *fakeCustomers) Create(c *entity.Customer) error {
	f.nextID++
	c.ID = f.nextID
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCustomers) GetByID(id int64) (*entity.Customer, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) GetByName(name string) (*entity.Customer, error) {
	for _, c := range f.rows {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) GetByRUT(rut string) (*entity.Customer, error) {
	for _, c := range f.rows {
		if c.RUT != "" && c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) List() ([]entity.Customer, error) {
	out := make([]entity.Customer, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCustomers) Update(c *entity.Customer) error {
	for i, ex := range f.rows {
		if ex.ID == c.ID {
			f.rows[i] = c
			return nil
		}
	}
	return nil
}

func (f *fakeCustomers) Delete(id int64) error {
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOrders struct {
	nextID     int64
	nextItemID int64
	rows       []*entity.Order
	items      []*entity.OrderItem

	// deleted registra los pedidos borrados para verificar la cascada.
	deleted []int64
}

func (f *fakeOrders) Create(o *entity.Order) error {
	f.nextID++
	o.ID = f.nextID
	f.rows = append(f.rows, o)
	return nil
}

func (f *fakeOrders) GetByID(id int64) (*entity.Order, error) {
	for _, o := range f.rows {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) GetByCode(code string) (*entity.Order, error) {
	for _, o := range f.rows {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) List() ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(f.rows))
	for _, o := range f.rows {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeOrders) ListByCustomer(customerID int64) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.rows {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeOrders) LastCodeWithPrefix(prefix string) (string, error) {
	last := ""
	for _, o := range f.rows {
		if strings.HasPrefix(o.Code, prefix) && o.Code > last {
			last = o.Code
		}
	}
	return last, nil
}

func (f *fakeOrders) Update(o *entity.Order) error {
	for i, ex := range f.rows {
		if ex.ID == o.ID {
			code := ex.Code
			f.rows[i] = o
			f.rows[i].Code = code
			return nil
		}
	}
	return nil
}

func (f *fakeOrders) UpdateBalance(id int64, balance decimal.Decimal) error {
	for _, o := range f.rows {
		if o.ID == id {
			o.Balance = balance
			return nil
		}
	}
	return nil
}

func (f *fakeOrders) Delete(id int64) error {
	for i, o := range f.rows {
		if o.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	kept := f.items[:0]
	for _, it := range f.items {
		if it.OrderID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrders) Items(orderID int64) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeOrders) CreateItem(it *entity.OrderItem) error {
	f.nextItemID++
	it.ID = f.nextItemID
	f.items = append(f.items, it)
	return nil
}

func (f *fakeOrders) UpdateItem(it *entity.OrderItem) error {
	for i, ex := range f.items {
		if ex.ID == it.ID {
			f.items[i] = it
			return nil
		}
	}
	return nil
}

func (f *fakeOrders) DeleteItem(id int64) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

var (
	_ repository.CustomerRepository = (*fakeCustomers)(nil)
	_ repository.OrderRepository   = (*fakeOrders)(nil)
)

// fakeTx ejecuta el callback directo sobre los dobles, sin transacción real.
type fakeTx struct {
	customers *fakeCustomers
	orders    *fakeOrders
}

func (f *fakeTx) Run(fn func(repository.CustomerRepository, repository.OrderRepository) error) error {
	return fn(f.customers, f.orders)
}
