// Package order contiene las reglas puras de numeración de pedidos y cálculo
// de saldo: sin estado, sin base de datos, directamente testeables.
package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxDailySequence es el último correlativo que cabe en el sufijo de 3 dígitos.
// Con 4 dígitos el orden lexicográfico de los códigos se rompería, así que al
// agotarse el día la generación falla en vez de emitir un código ambiguo.
const MaxDailySequence = 999

// ErrSequenceExhausted indica que el día ya tiene 999 pedidos numerados.
var ErrSequenceExhausted = errors.New("correlativo diario agotado (999 pedidos en el día)")

// CodePrefix devuelve el prefijo del día: "P" + YYYYMMDD.
func CodePrefix(date time.Time) string {
	return "P" + date.Format("20060102")
}

// FormatCode arma el código completo: PYYYYMMDD-XXX.
func FormatCode(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", CodePrefix(date), seq)
}

// NextSequence calcula el correlativo siguiente a partir del mayor código
// existente del día (lexicográficamente). Código vacío o sufijo no numérico
// reinician el correlativo en 1, igual que cuando el día no tiene pedidos.
func NextSequence(lastCode string) int {
	if lastCode == "" {
		return 1
	}
	idx := strings.LastIndex(lastCode, "-")
	if idx < 0 {
		return 1
	}
	n, err := strconv.Atoi(lastCode[idx+1:])
	if err != nil || n < 1 {
		return 1
	}
	return n + 1
}

// NextCode genera el código del próximo pedido de la fecha dada, conocido el
// mayor código existente con el prefijo del día ("" si no hay ninguno).
func NextCode(date time.Time, lastCode string) (string, error) {
	seq := NextSequence(lastCode)
	if seq > MaxDailySequence {
		return "", ErrSequenceExhausted
	}
	return FormatCode(date, seq), nil
}
