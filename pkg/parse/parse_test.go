package parse_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raizdiseno/crm-pyme/pkg/parse"
)

func TestInt(t *testing.T) {
	n, err := parse.Int(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = parse.Int("")
	assert.Error(t, err, "vacío no puede degradarse a cero en silencio")

	_, err = parse.Int("3,5")
	assert.Error(t, err)
}

func TestDecimal(t *testing.T) {
	d, err := parse.Decimal("1500.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1500.50")))

	// Coma decimal chilena, con separador de miles.
	d, err = parse.Decimal("1.500,50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1500.50")))

	_, err = parse.Decimal("")
	assert.Error(t, err)

	_, err = parse.Decimal("abc")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d, err := parse.Date("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parse.Date("15/03/2026")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	// Año corto: el día va primero, igual que en todos los demás formatos.
	d, err = parse.Date("05-03-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = parse.Date("25-03-24")
	require.NoError(t, err)
	assert.Equal(t, 25, d.Day(), "un día mayor que 12 también parsea")

	_, err = parse.Date("mañana")
	assert.Error(t, err)
}

func TestPhone(t *testing.T) {
	// Valor leído como float por la planilla.
	assert.Equal(t, "952288367", parse.Phone("952288367.0"))
	// Notación científica.
	assert.Equal(t, "950000000", parse.Phone("9.5e+08"))
	// Separadores.
	assert.Equal(t, "56912345678", parse.Phone("+56 9 1234-5678")[1:])
	assert.Equal(t, "", parse.Phone("  "))
}
