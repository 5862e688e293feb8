package main

import (
	"fmt"

	"github.com/raizdiseno/crm-pyme/internal/application/dto"
)

// runCustomers atiende el menú de clientes hasta que el usuario sale.
// Devuelve true si hubo algún cambio en la base.
func (a *app) runCustomers() bool {
	mutated := false
	for {
		fmt.Fprintln(a.out, "")
		fmt.Fprintln(a.out, "clientes: [l]istar  [b]uscar  [n]uevo  [e]ditar  [x] eliminar  [h]istorial  [s]alir")
		switch a.prompt("opción") {
		case "l":
			a.listCustomers()
		case "b":
			a.searchCustomers()
		case "n":
			if a.createCustomer() {
				mutated = true
			}
		case "e":
			if a.editCustomer() {
				mutated = true
			}
		case "x":
			if a.deleteCustomer() {
				mutated = true
			}
		case "h":
			a.customerHistory()
		case "s", "":
			return mutated
		}
	}
}

func (a *app) listCustomers() {
	list, err := a.customers.List()
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.printCustomers(list)
}

func (a *app) searchCustomers() {
	a.printCustomerSearch(a.prompt("Buscar (nombre, teléfono, correo o comuna)"))
}

// printCustomerSearch resuelve una búsqueda de texto y la imprime. También
// atiende la forma corta "crm clientes <texto>".
func (a *app) printCustomerSearch(text string) {
	list, err := a.customers.Search(text)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	a.printCustomers(list)
}

func (a *app) printCustomers(list []dto.CustomerResponse) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "sin resultados")
		return
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%4d  %-30s  %-12s  %-12s  %s\n", c.ID, c.Name, c.RUT, c.Phone, c.Comuna)
	}
}

func (a *app) createCustomer() bool {
	req := dto.CreateCustomerRequest{
		Name:    a.prompt("Nombre"),
		RUT:     a.prompt("RUT"),
		Phone:   a.prompt("Teléfono"),
		Email:   a.prompt("Correo"),
		Address: a.prompt("Dirección"),
		Comuna:  a.prompt("Comuna"),
	}
	c, err := a.customers.Create(req)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintf(a.out, "cliente %d creado: %s (%s)\n", c.ID, c.Name, c.RUT)
	return true
}

func (a *app) editCustomer() bool {
	id, ok := a.promptInt("ID del cliente")
	if !ok {
		return false
	}
	current, err := a.customers.Get(int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	req := dto.UpdateCustomerRequest{
		Name:    a.promptDefault("Nombre", current.Name),
		RUT:     a.promptDefault("RUT", current.RUT),
		Phone:   a.promptDefault("Teléfono", current.Phone),
		Email:   a.promptDefault("Correo", current.Email),
		Address: a.promptDefault("Dirección", current.Address),
		Comuna:  a.promptDefault("Comuna", current.Comuna),
	}
	c, err := a.customers.Update(int64(id), req)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintf(a.out, "cliente %d actualizado\n", c.ID)
	return true
}

func (a *app) deleteCustomer() bool {
	id, ok := a.promptInt("ID del cliente")
	if !ok {
		return false
	}
	if !a.confirm("Se eliminará el cliente y TODOS sus pedidos. ¿Continuar?") {
		return false
	}
	if err := a.customers.Delete(int64(id)); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}
	fmt.Fprintln(a.out, "cliente eliminado")
	return true
}

func (a *app) customerHistory() {
	id, ok := a.promptInt("ID del cliente")
	if !ok {
		return
	}
	history, err := a.customers.History(int64(id))
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "el cliente no tiene pedidos")
		return
	}
	for _, o := range history {
		fmt.Fprintf(a.out, "%-14s  %s  %-22s  saldo $%s\n",
			o.Code, o.Date.Format("02-01-2006"), o.Status, o.Balance.StringFixed(0))
	}
}
