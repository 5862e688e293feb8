package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/search"
)

var clientes = []entity.Customer{
	{ID: 1, Name: "Ana Pérez", Phone: "952288367", Email: "ana@correo.cl", Comuna: "Ñuñoa"},
	{ID: 2, Name: "Bárbara Soto", Phone: "911111111", Email: "bsoto@correo.cl", Comuna: "Maipú"},
	{ID: 3, Name: "Carlos Díaz", Phone: "922222222", Email: "cdiaz@correo.cl", Comuna: "Providencia"},
}

func TestCustomers_SubcadenaInsensibleAMayusculas(t *testing.T) {
	out := search.Customers(clientes, "ana")
	require.Len(t, out, 1)
	assert.Equal(t, "Ana Pérez", out[0].Name)
}

func TestCustomers_IgnoraTildes(t *testing.T) {
	// "perez" debe encontrar a "Pérez" y "nunoa" a "Ñuñoa".
	assert.Len(t, search.Customers(clientes, "perez"), 1)
	assert.Len(t, search.Customers(clientes, "nunoa"), 1)
	assert.Len(t, search.Customers(clientes, "maipu"), 1)
}

func TestCustomers_BuscaEnTelefonoYCorreo(t *testing.T) {
	assert.Len(t, search.Customers(clientes, "95228"), 1)
	assert.Len(t, search.Customers(clientes, "bsoto@"), 1)
}

func TestCustomers_TextoVacioDevuelveTodoEnOrden(t *testing.T) {
	out := search.Customers(clientes, "  ")
	require.Len(t, out, 3)
	// El orden de la instantánea no se altera.
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[2].ID)
}

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var pedidos = []entity.Order{
	{ID: 10, Code: "P20260829-002", CustomerName: "Ana Pérez", CustomerPhone: "952288367",
		Status: entity.StatusPendiente, Date: fecha(2026, 8, 29)},
	{ID: 11, Code: "P20260829-001", CustomerName: "Bárbara Soto", CustomerPhone: "911111111",
		Status: entity.StatusEntregado, Date: fecha(2026, 8, 29)},
	{ID: 12, Code: "P20260801-001", CustomerName: "Ana Pérez", CustomerPhone: "952288367",
		Status: entity.StatusEntregado, Date: fecha(2026, 8, 1)},
}

func TestOrders_PorNumero(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{Mode: search.OrdersByCode, Text: "p20260801"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(12), out[0].ID)
}

func TestOrders_PorClienteNombreOTelefono(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{Mode: search.OrdersByClient, Text: "ana"})
	assert.Len(t, out, 2)

	out = search.Orders(pedidos, search.OrderFilter{Mode: search.OrdersByClient, Text: "9111"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(11), out[0].ID)
}

func TestOrders_PorEstadoExacto(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{Mode: search.OrdersByStatus, Status: "entregado"})
	assert.Len(t, out, 2, "el estado compara exacto ignorando mayúsculas y tildes")

	// Subcadena de estado no coincide: la comparación es exacta.
	out = search.Orders(pedidos, search.OrderFilter{Mode: search.OrdersByStatus, Status: "entre"})
	assert.Empty(t, out)
}

func TestOrders_PorRangoDeFechas(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{
		Mode: search.OrdersByDate,
		From: fecha(2026, 8, 1),
		To:   fecha(2026, 8, 15),
	})
	require.Len(t, out, 1)
	assert.Equal(t, int64(12), out[0].ID)
}

func TestOrders_RangoInvertidoSeCorrige(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{
		Mode: search.OrdersByDate,
		From: fecha(2026, 8, 31),
		To:   fecha(2026, 8, 20),
	})
	assert.Len(t, out, 2, "desde/hasta invertidos se intercambian, no devuelven vacío")
}

func TestOrders_ModoDesconocidoDevuelveTodo(t *testing.T) {
	out := search.Orders(pedidos, search.OrderFilter{Mode: "otro"})
	assert.Len(t, out, 3)
}
