package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/raizdiseno/crm-pyme/internal/application/dto"
	"github.com/raizdiseno/crm-pyme/internal/domain/entity"
	"github.com/raizdiseno/crm-pyme/internal/domain/search"
	"github.com/raizdiseno/crm-pyme/pkg/parse"
)

// runOrders atiende el menú de pedidos hasta que el usuario sale.
// Devuelve true si hubo algún cambio en la base.
func (a *app) runOrders() bool {
	mutated := false
	for {
		fmt.Fprintln(a.out, "")
		fmt.Fprintln(a.out, "pedidos: [l]istar  [b]uscar  [v]er  [n]uevo  [e]ditar  [i]tems  [x] eliminar  [s]alir")
		switch a.prompt("opción") {
		case "l":
			a.listOrders()
		case "b":
			a.searchOrders()
		case "v":
			a.showOrder()
		case "n":
			if a.createOrder() {
				mutated = true
			}
		case "e":
			if a.editOrder() {
				mutated = true
			}
		case "i":
			if a.editItems() {
				mutated = true
			}
		case "x":
			if a.deleteOrder() {
				mutated = true
			}
		case "s", "":
			return mutated
		}
	}
}

func (a *app) listOrders() {
	list, err := a.orders.List()
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.printOrders(list)
}

func (a *app) searchOrders() {
	fmt.Fprintln(a.out, "buscar por: todos | numero | cliente | estado | fecha")
	mode := a.prompt("modo")

	f := search.OrderFilter{Mode: mode}
	switch mode {
	case search.OrdersByCode, search.OrdersByClient:
		f.Text = a.prompt("texto")
	case search.OrdersByStatus:
		fmt.Fprintln(a.out, "estados:", strings.Join(entity.OrderStatuses, " | "))
		f.Status = a.prompt("estado")
	case search.OrdersByDate:
		from, ok := a.promptDate("desde (dd-mm-aaaa)")
		if !ok {
			return
		}
		to, ok := a.promptDate("hasta (dd-mm-aaaa)")
		if !ok {
			return
		}
		f.From, f.To = from, to
	}

	list, err := a.orders.Search(f)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.printOrders(list)
}

// printOrderSearch atiende la forma corta "crm pedidos <modo> [texto]".
// Lo que falte del filtro se pregunta.
func (a *app) printOrderSearch(mode string, rest []string) {
	f := search.OrderFilter{Mode: mode}
	text := strings.Join(rest, " ")
	switch mode {
	case search.OrdersByCode, search.OrdersByClient:
		if text == "" {
			text = a.prompt("texto")
		}
		f.Text = text
	case search.OrdersByStatus:
		if text == "" {
			fmt.Fprintln(a.out, "estados:", strings.Join(entity.OrderStatuses, " | "))
			text = a.prompt("estado")
		}
		f.Status = text
	case search.OrdersByDate:
		var ok bool
		if len(rest) >= 2 {
			from, errFrom := parse.Date(rest[0])
			to, errTo := parse.Date(rest[1])
			if errFrom == nil && errTo == nil {
				f.From, f.To = from, to
				break
			}
		}
		if f.From, ok = a.promptDate("desde (dd-mm-aaaa)"); !ok {
			return
		}
		if f.To, ok = a.promptDate("hasta (dd-mm-aaaa)"); !ok {
			return
		}
	}

	list, err := a.orders.Search(f)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.printOrders(list)
}

func (a *app) printOrders(list []dto.OrderResponse) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "sin resultados")
		return
	}
	for _, o := range list {
		fmt.Fprintf(a.out, "%4d  %-14s  %s  %-25s  %-22s  saldo $%s\n",
			o.ID, o.Code, o.Date.Format("02-01-2006"), o.CustomerName, o.Status, o.Balance.StringFixed(0))
	}
}

func (a *app) showOrder() {
	id, ok := a.promptInt("ID del pedido")
	if !ok {
		return
	}
	o, items, err := a.orders.Get(int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	fmt.Fprintf(a.out, "pedido %s  (%s)\n", o.Code, o.Date.Format("02-01-2006"))
	fmt.Fprintf(a.out, "cliente: %s  %s\n", o.CustomerName, o.CustomerPhone)
	fmt.Fprintf(a.out, "canal: %s  pago: %s  doc: %s  despacho: %s\n",
		o.Channel, o.PaymentForm, o.DocumentType, o.Delivery)
	fmt.Fprintf(a.out, "estado: %s\n", o.Status)
	for _, it := range items {
		fmt.Fprintf(a.out, "  %4d  %-30s  x%-3d  $%s  = $%s\n",
			it.ID, it.Product, it.Quantity, it.UnitPrice.StringFixed(0), it.Total.StringFixed(0))
	}
	fmt.Fprintf(a.out, "abono: $%s   saldo: $%s\n", o.AmountPaid.StringFixed(0), o.Balance.StringFixed(0))
}

func (a *app) createOrder() bool {
	id, ok := a.promptInt("ID del cliente")
	if !ok {
		return false
	}

	date := time.Now()
	if d, ok := a.promptDate("Fecha (dd-mm-aaaa, Enter = hoy)"); ok {
		date = d
	}

	req := dto.CreateOrderRequest{
		CustomerID:   int64(id),
		Date:         date,
		Channel:      a.prompt("Canal de venta"),
		PaymentForm:  a.prompt("Forma de pago"),
		DocumentType: a.prompt("Documento (boleta/factura)"),
		Delivery:     a.prompt("Despacho"),
		Status:       a.promptStatus(entity.StatusPendiente),
	}
	if paid, ok := a.promptDecimal("Abono"); ok {
		req.AmountPaid = paid
	}

	o, err := a.orders.Create(req)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintf(a.out, "pedido creado con número %s\n", o.Code)
	return true
}

func (a *app) editOrder() bool {
	id, ok := a.promptInt("ID del pedido")
	if !ok {
		return false
	}
	current, _, err := a.orders.Get(int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintf(a.out, "editando %s (el número no se puede cambiar)\n", current.Code)

	req := dto.UpdateOrderRequest{
		CustomerID:   current.CustomerID,
		Date:         current.Date,
		Channel:      a.promptDefault("Canal de venta", current.Channel),
		PaymentForm:  a.promptDefault("Forma de pago", current.PaymentForm),
		DocumentType: a.promptDefault("Documento", current.DocumentType),
		Delivery:     a.promptDefault("Despacho", current.Delivery),
		Status:       a.promptStatus(current.Status),
		AmountPaid:   current.AmountPaid,
	}
	if d, ok := a.promptDate("Fecha (Enter = sin cambio)"); ok {
		req.Date = d
	}
	if paid, ok := a.promptDecimal("Abono (Enter = sin cambio)"); ok {
		req.AmountPaid = paid
	}
	// Saldo escrito a mano: se respeta tal cual. Con Enter se recalcula
	// desde los ítems y el abono.
	if saldo, ok := a.promptDecimal("Saldo (Enter = recalcular desde los ítems)"); ok {
		req.Balance = &saldo
	}

	if _, err := a.orders.Update(int64(id), req); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintln(a.out, "pedido actualizado")
	return true
}

// editItems recorre las líneas existentes y permite agregar nuevas. El saldo
// se recalcula al guardar.
func (a *app) editItems() bool {
	id, ok := a.promptInt("ID del pedido")
	if !ok {
		return false
	}
	_, items, err := a.orders.Get(int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	var rows []dto.ItemInput
	for _, it := range items {
		fmt.Fprintf(a.out, "ítem %d: %s x%d $%s\n", it.ID, it.Product, it.Quantity, it.UnitPrice.StringFixed(0))
		if a.confirm("¿Eliminar esta línea?") {
			continue
		}
		row := dto.ItemInput{
			ID:        it.ID,
			Product:   a.promptDefault("  Producto", it.Product),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if q, ok := a.promptInt("  Cantidad (Enter = sin cambio)"); ok {
			row.Quantity = q
		}
		if p, ok := a.promptDecimal("  Precio unitario (Enter = sin cambio)"); ok {
			row.UnitPrice = p
		}
		rows = append(rows, row)
	}

	for {
		product := a.prompt("Nuevo producto (Enter para terminar)")
		if product == "" {
			break
		}
		row := dto.ItemInput{Product: product, Quantity: 1}
		if q, ok := a.promptInt("  Cantidad"); ok {
			row.Quantity = q
		}
		if p, ok := a.promptDecimal("  Precio unitario"); ok {
			row.UnitPrice = p
		}
		rows = append(rows, row)
	}

	saved, err := a.orders.SaveItems(int64(id), rows)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintf(a.out, "%d líneas guardadas, saldo recalculado\n", len(saved))
	return true
}

func (a *app) deleteOrder() bool {
	id, ok := a.promptInt("ID del pedido")
	if !ok {
		return false
	}
	if !a.confirm("Se eliminará el pedido y sus líneas. ¿Continuar?") {
		return false
	}
	if err := a.orders.Delete(int64(id)); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintln(a.out, "pedido eliminado")
	return true
}

// promptStatus ofrece los estados válidos y conserva el actual con Enter.
func (a *app) promptStatus(current string) string {
	fmt.Fprintln(a.out, "estados:", strings.Join(entity.OrderStatuses, " | "))
	return a.promptDefault("Estado", current)
}

// promptDate insiste hasta recibir una fecha válida o una línea vacía.
func (a *app) promptDate(label string) (time.Time, bool) {
	for {
		s := a.prompt(label)
		if s == "" {
			return time.Time{}, false
		}
		d, err := parse.Date(s)
		if err != nil {
			fmt.Fprintln(a.out, "fecha no reconocida, intente de nuevo")
			continue
		}
		return d, true
	}
}
