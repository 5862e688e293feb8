package main

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raizdiseno/crm-pyme/internal/application/dto"
	"github.com/raizdiseno/crm-pyme/internal/application/usecase"
	"github.com/raizdiseno/crm-pyme/internal/infrastructure/sqlite"
	"github.com/raizdiseno/crm-pyme/pkg/logger"
)

// newTestApp arma la aplicación sobre una base temporal, con la entrada
// guionada línea por línea y la salida capturada.
func newTestApp(t *testing.T, input string) *app {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "crm_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	customerRepo := sqlite.NewCustomerRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	tx := sqlite.NewTxRunner(db)

	return &app{
		in:        bufio.NewReader(strings.NewReader(input)),
		out:       &bytes.Buffer{},
		log:       logger.New(logger.Config{Env: "test", Level: "error"}),
		customers: usecase.NewCustomerUseCase(customerRepo, orderRepo),
		orders:    usecase.NewOrderUseCase(orderRepo, customerRepo, tx),
	}
}

func seedOrder(t *testing.T, a *app) *dto.OrderResponse {
	t.Helper()
	c, err := a.customers.Create(dto.CreateCustomerRequest{Name: "María Pérez", RUT: "12.345.678-5"})
	require.NoError(t, err)
	o, err := a.orders.Create(dto.CreateOrderRequest{
		CustomerID: c.ID,
		Date:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = a.orders.SaveItems(o.ID, []dto.ItemInput{
		{Product: "Mesa lenga", Quantity: 2, UnitPrice: decimal.NewFromInt(45000)},
	})
	require.NoError(t, err)
	return o
}

func TestEditOrder_SaldoForzadoDesdeElPrompt(t *testing.T) {
	// ID del pedido, cinco Enter (canal, pago, documento, despacho, estado),
	// fecha y abono sin cambio, y un saldo escrito a mano.
	a := newTestApp(t, "1\n\n\n\n\n\n\n\n12345\n")
	seedOrder(t, a)

	require.True(t, a.editOrder())

	got, _, err := a.orders.Get(1)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(12345)),
		"el saldo escrito en el prompt se respeta, saldo %s", got.Balance)
}

func TestEditOrder_EnterRecalculaElSaldo(t *testing.T) {
	forced := decimal.NewFromInt(12345)

	// Todo con Enter: el saldo forzado previo se recalcula desde los ítems.
	a := newTestApp(t, "1\n\n\n\n\n\n\n\n\n")
	o := seedOrder(t, a)
	_, err := a.orders.Update(o.ID, dto.UpdateOrderRequest{
		CustomerID: o.CustomerID, Balance: &forced,
	})
	require.NoError(t, err)

	require.True(t, a.editOrder())

	got, _, err := a.orders.Get(1)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(90000)),
		"2 x 45000 sin abono, saldo %s", got.Balance)
}
