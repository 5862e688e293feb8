package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raizdiseno/crm-pyme/pkg/rut"
)

func TestValidate_RutCorrecto(t *testing.T) {
	// 12.345.678 -> módulo 11 da 5 como dígito verificador.
	for _, s := range []string{"12345678-5", "12.345.678-5", "123456785"} {
		assert.NoError(t, rut.Validate(s), "el RUT %q debe ser válido", s)
	}
}

func TestValidate_DigitoK(t *testing.T) {
	// Cuerpo "6": 6*2 = 12, 12 %% 11 = 1, 11-1 = 10 -> K.
	assert.NoError(t, rut.Validate("6-K"))
	assert.NoError(t, rut.Validate("6-k"), "la K minúscula se normaliza")
}

func TestValidate_DigitoCero(t *testing.T) {
	// Cuerpo "14": 4*2 + 1*3 = 11, resto 0 -> dígito 0.
	assert.NoError(t, rut.Validate("14-0"))
}

func TestValidate_DigitoIncorrecto(t *testing.T) {
	err := rut.Validate("12.345.678-4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dígito verificador inválido")
}

func TestValidate_EntradaInvalida(t *testing.T) {
	assert.Error(t, rut.Validate(""))
	assert.Error(t, rut.Validate("-"))
	assert.Error(t, rut.Validate("K"), "solo dígito verificador, sin cuerpo")
}

func TestComputeVerifier(t *testing.T) {
	cases := []struct {
		body string
		want byte
	}{
		{"12345678", '5'},
		{"6", 'K'},
		{"14", '0'},
		{"1", '9'},
	}
	for _, c := range cases {
		got, err := rut.ComputeVerifier(c.body)
		require.NoError(t, err, "cuerpo %q", c.body)
		assert.Equal(t, string(c.want), string(got), "cuerpo %q", c.body)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "12.345.678-5", rut.Format("12345678-5"))
	assert.Equal(t, "6-K", rut.Format("6k"))
	// Entrada sin cuerpo suficiente se devuelve tal cual.
	assert.Equal(t, "x", rut.Format("x"))
}

func TestEqual_IgnoraFormato(t *testing.T) {
	assert.True(t, rut.Equal("12.345.678-5", "123456785"))
	assert.True(t, rut.Equal("6-k", "6K"))
	assert.False(t, rut.Equal("12345678-5", "14-0"))
	assert.False(t, rut.Equal("", ""), "RUT vacíos nunca se consideran iguales")
}
