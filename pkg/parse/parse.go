// Package parse centraliza la conversión de texto proveniente de celdas y
// formularios a valores tipados. Cada función devuelve un error explícito:
// nunca se degrada silenciosamente a cero, el que llama decide qué hacer.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts de fecha aceptados en planillas y formularios.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"02-01-06",
}

// Int convierte texto a entero. Texto vacío es error.
func Int(s string) (int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("parse: entero vacío")
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("parse: %q no es un entero", s)
	}
	return n, nil
}

// Decimal convierte texto a decimal exacto. Acepta coma decimal ("12,50")
// y separadores de miles con punto cuando hay coma decimal.
func Decimal(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, fmt.Errorf("parse: monto vacío")
	}
	if strings.Contains(t, ",") {
		t = strings.ReplaceAll(t, ".", "")
		t = strings.ReplaceAll(t, ",", ".")
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse: %q no es un monto válido", s)
	}
	return d, nil
}

// Date convierte texto a fecha probando los layouts conocidos.
func Date(s string) (time.Time, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, fmt.Errorf("parse: fecha vacía")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse: %q no es una fecha reconocible", s)
}

// Phone limpia un teléfono venido de una celda de planilla:
// quita el ".0" de valores leídos como float, expande notación científica
// (9.5e+08 -> 950000000) y elimina espacios, comas y guiones.
func Phone(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}

	t = strings.TrimSuffix(t, ".0")

	if strings.Contains(strings.ToLower(t), "e+") || strings.Contains(strings.ToLower(t), "e-") {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			t = strconv.FormatInt(int64(f), 10)
		}
	}

	replacer := strings.NewReplacer(" ", "", ",", "", "-", "")
	return replacer.Replace(t)
}
