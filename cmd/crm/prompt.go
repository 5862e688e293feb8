package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/raizdiseno/crm-pyme/pkg/parse"
)

// prompt lee una línea de la entrada con una etiqueta. Devuelve el texto sin
// espacios en los bordes; cadena vacía si el usuario solo presiona Enter.
func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	return a.readLine()
}

// promptDefault muestra el valor actual y lo conserva si el usuario no escribe nada.
func (a *app) promptDefault(label, current string) string {
	fmt.Fprintf(a.out, "%s [%s]: ", label, current)
	if s := a.readLine(); s != "" {
		return s
	}
	return current
}

// promptInt insiste hasta recibir un entero o una línea vacía (devuelve 0, false).
func (a *app) promptInt(label string) (int, bool) {
	for {
		s := a.prompt(label)
		if s == "" {
			return 0, false
		}
		n, err := parse.Int(s)
		if err != nil {
			fmt.Fprintln(a.out, "valor no numérico, intente de nuevo")
			continue
		}
		return n, true
	}
}

// promptDecimal insiste hasta recibir un monto o una línea vacía (devuelve cero, false).
func (a *app) promptDecimal(label string) (decimal.Decimal, bool) {
	for {
		s := a.prompt(label)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := parse.Decimal(s)
		if err != nil {
			fmt.Fprintln(a.out, "monto inválido, intente de nuevo")
			continue
		}
		return d, true
	}
}

// confirm pregunta sí/no. Solo "s" o "si" valen como sí.
func (a *app) confirm(label string) bool {
	s := strings.ToLower(a.prompt(label + " (s/n)"))
	return s == "s" || s == "si" || s == "sí"
}

func (a *app) readLine() string {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
