package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/repository"
	"github.com/raizdiseno/crm-pyme/pkg/logger"
)

// --- dobles en memoria ---

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
	return out, nil
}

func (f *fakeOrders) ListByCustomer(customerID int64) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.rows {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
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

type fakeTx struct {
	customers *fakeCustomers
	orders    *fakeOrders
}

func (f *fakeTx) Run(fn func(repository.CustomerRepository, repository.OrderRepository) error) error {
	return fn(f.customers, f.orders)
}

func newTestImporter() (*Importer, *fakeCustomers, *fakeOrders) {
	customers := &fakeCustomers{}
	orders := &fakeOrders{}
	tx := &fakeTx{customers: customers, orders: orders}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return New(tx, log), customers, orders
}

// --- grillas de prueba ---

var header = []string{
	"FECHA", "CANAL DE VENTA", "PEDIDO", "CLIENTE", "TELÉFONO",
	"DIRECCIÓN", "COMUNA", "PRODUCTOS", "UNID", "FORMA DE PAGO",
	"BOLETA", "PAGO", "SALDO", "DESPACHO", "CORREO", "ESTADO",
}

func TestImport_PlanillaSinEncabezado(t *testing.T) {
	imp, _, _ := newTestImporter()

	_, err := imp.Import([][]string{
		{"algo", "que", "no", "es", "planilla"},
	})

	assert.ErrorIs(t, err, ErrHeaderNotFound, "sin fila FECHA debe fallar")
}

func TestImport_ClientePedidoEItem(t *testing.T) {
	imp, customers, orders := newTestImporter()

	grid := [][]string{
		{"resumen de ventas"},
		header,
		{"2024-03-05", "Instagram", "P20240305-001", "María Pérez", "952288367.0",
			"Av. Italia 1439", "Ñuñoa", "Mesa lenga", "2", "Transferencia",
			"Boleta", "50000", "30000", "Starken", "maria@correo.cl", "Pendiente"},
	}

	sum, err := imp.Import(grid)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.CustomersCreated, "debe crear un cliente")
	assert.Equal(t, 1, sum.OrdersCreated, "debe crear un pedido")
	assert.Equal(t, 1, sum.ItemsCreated, "debe crear un ítem")

	c, err := customers.GetByName("María Pérez")
	require.NoError(t, err)
	require.NotNil(t, c, "el cliente debe quedar guardado")
	assert.Equal(t, "952288367", c.Phone, "el teléfono debe quedar sin el sufijo .0")
	assert.Equal(t, "Ñuñoa", c.Comuna)

	o, err := orders.GetByCode("P20240305-001")
	require.NoError(t, err)
	require.NotNil(t, o, "el pedido debe quedar guardado")
	assert.Equal(t, c.ID, o.CustomerID)
	assert.Equal(t, "Instagram", o.Channel)
	assert.True(t, o.AmountPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, o.Balance.Equal(decimal.NewFromInt(30000)))

	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mesa lenga", items[0].Product)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.IsZero(), "la planilla no trae precio unitario")
}

func TestImport_RellenoDeContextoYContactoPorCliente(t *testing.T) {
	imp, customers, orders := newTestImporter()

	// Celdas combinadas: la segunda fila de María hereda fecha, canal y
	// pedido; la fila de Juan abre otro pedido y NO hereda el teléfono de María.
	grid := [][]string{
		header,
		{"2024-03-05", "Feria", "P20240305-001", "María Pérez", "911111111",
			"", "Providencia", "Silla raulí", "1", "Efectivo",
			"", "", "", "", "", "Pendiente"},
		{"", "", "", "", "",
			"", "", "Banco alerce", "1", "",
			"", "", "", "", "", ""},
		{"2024-03-06", "Instagram", "P20240306-001", "Juan Soto", "",
			"", "Macul", "Repisa pino", "3", "Transferencia",
			"", "", "", "", "", "Pendiente"},
	}

	sum, err := imp.Import(grid)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.CustomersCreated, "dos clientes distintos")
	assert.Equal(t, 2, sum.OrdersCreated, "dos pedidos distintos")
	assert.Equal(t, 3, sum.ItemsCreated, "tres líneas de producto")
	assert.Equal(t, 1, sum.OrdersMatched, "la segunda fila de María calza su pedido")

	o, err := orders.GetByCode("P20240305-001")
	require.NoError(t, err)
	require.NotNil(t, o)
	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2, "ambas líneas de María caen en el mismo pedido")

	juan, err := customers.GetByName("Juan Soto")
	require.NoError(t, err)
	require.NotNil(t, juan)
	assert.Empty(t, juan.Phone, "Juan no hereda el teléfono de María")
}

func TestImport_Idempotente(t *testing.T) {
	imp, _, orders := newTestImporter()

	grid := [][]string{
		header,
		{"2024-03-05", "Feria", "P20240305-001", "María Pérez", "911111111",
			"", "Providencia", "Silla raulí", "1", "Efectivo",
			"", "", "", "", "", "Pendiente"},
	}

	_, err := imp.Import(grid)
	require.NoError(t, err)

	sum, err := imp.Import(grid)
	require.NoError(t, err)

	assert.Zero(t, sum.CustomersCreated, "reimportar no duplica clientes")
	assert.Zero(t, sum.OrdersCreated, "reimportar no duplica pedidos")
	assert.Zero(t, sum.ItemsCreated, "reimportar no duplica ítems")
	assert.Equal(t, 1, sum.ItemsSkipped)

	all, err := orders.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestImport_DescartaFilasSinFechaNiCliente(t *testing.T) {
	imp, customers, _ := newTestImporter()

	grid := [][]string{
		header,
		// Sin fecha en toda la planilla: nada que importar.
		{"", "Feria", "P1", "María Pérez", "", "", "", "Silla", "1",
			"", "", "", "", "", "", ""},
	}

	sum, err := imp.Import(grid)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Discarded)
	list, err := customers.List()
	require.NoError(t, err)
	assert.Empty(t, list, "una fila sin fecha no crea nada")
}

func TestImport_UnidadesIlegiblesValenUno(t *testing.T) {
	imp, _, orders := newTestImporter()

	grid := [][]string{
		header,
		{"2024-03-05", "Feria", "P20240305-001", "María Pérez", "", "", "",
			"Silla raulí", "sin dato", "Efectivo", "", "", "", "", "", ""},
	}

	_, err := imp.Import(grid)
	require.NoError(t, err)

	o, err := orders.GetByCode("P20240305-001")
	require.NoError(t, err)
	require.NotNil(t, o)
	items, err := orders.Items(o.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity, "unidades ilegibles quedan en 1")
}
