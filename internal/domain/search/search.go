// Package search implementa el filtrado en memoria de los listados de
// clientes y pedidos. Trabaja sobre la instantánea que ya cargó el listado;
// no empuja nada al motor de consultas.
package search

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
)

// foldTransformer descompone y elimina marcas diacríticas (NFD -> sin Mn -> NFC),
// para que "Perez" encuentre a "Pérez" y "Nunoa" a "Ñuñoa"... casi: la ñ pierde
// la virgulilla a propósito, es lo que la búsqueda de la tienda necesita.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza texto para comparación: sin tildes y en minúsculas.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// contains indica si needle aparece como subcadena de haystack, ambos plegados.
func contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Customers filtra la instantánea de clientes por subcadena sobre
// nombre, teléfono, correo o comuna. Texto vacío devuelve todo.
// El orden de entrada (nombre ascendente) se conserva.
func Customers(snapshot []entity.Customer, text string) []entity.Customer {
	if strings.TrimSpace(text) == "" {
		return snapshot
	}
	var out []entity.Customer
	for _, c := range snapshot {
		if contains(c.Name, text) || contains(c.Phone, text) ||
			contains(c.Email, text) || contains(c.Comuna, text) {
			out = append(out, c)
		}
	}
	return out
}

// Modos de búsqueda de pedidos.
const (
	OrdersAll      = "todos"
	OrdersByCode   = "numero"
	OrdersByClient = "cliente"
	OrdersByStatus = "estado"
	OrdersByDate   = "fecha"
)

// OrderFilter describe una búsqueda sobre la instantánea de pedidos.
type OrderFilter struct {
	Mode   string
	Text   string    // para numero y cliente
	Status string    // para estado (coincidencia exacta)
	From   time.Time // para fecha
	To     time.Time
}

// Orders filtra la instantánea de pedidos según el modo del filtro.
// El orden de entrada (fecha descendente) se conserva; no hay ranking.
func Orders(snapshot []entity.Order, f OrderFilter) []entity.Order {
	switch f.Mode {
	case OrdersByCode:
		if strings.TrimSpace(f.Text) == "" {
			return snapshot
		}
		var out []entity.Order
		for _, o := range snapshot {
			if contains(o.Code, f.Text) {
				out = append(out, o)
			}
		}
		return out

	case OrdersByClient:
		if strings.TrimSpace(f.Text) == "" {
			return snapshot
		}
		var out []entity.Order
		for _, o := range snapshot {
			if contains(o.CustomerName, f.Text) || contains(o.CustomerPhone, f.Text) {
				out = append(out, o)
			}
		}
		return out

	case OrdersByStatus:
		if f.Status == "" {
			return snapshot
		}
		var out []entity.Order
		for _, o := range snapshot {
			if Fold(o.Status) == Fold(f.Status) {
				out = append(out, o)
			}
		}
		return out

	case OrdersByDate:
		from, to := f.From, f.To
		if from.After(to) {
			from, to = to, from
		}
		var out []entity.Order
		for _, o := range snapshot {
			if o.Date.IsZero() {
				continue
			}
			day := o.Date.Truncate(24 * time.Hour)
			if !day.Before(from.Truncate(24*time.Hour)) && !day.After(to.Truncate(24*time.Hour)) {
				out = append(out, o)
			}
		}
		return out

	default:
		return snapshot
	}
}
