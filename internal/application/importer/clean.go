package importer

import (
	"errors"
	"strings"

	"github.com/raizdiseno/crm-pyme/internal/domain/search"
	"github.com/raizdiseno/crm-pyme/pkg/parse"
)

// ErrHeaderNotFound indica que la planilla no tiene la fila de encabezados
// (ninguna fila parte con "FECHA"). Sin encabezados no hay importación.
var ErrHeaderNotFound = errors.New("no se encontró una fila con 'FECHA' como encabezado")

// Row es una fila de la planilla ya limpia: celdas como texto, con los
// rellenos hacia abajo aplicados.
type Row struct {
	Date         string
	Channel      string
	Code         string
	Customer     string
	Phone        string
	Address      string
	Comuna       string
	Email        string
	Product      string
	Units        string
	PaymentForm  string
	DocumentType string
	Paid         string
	Balance      string
	Delivery     string
	Status       string
}

// Etiquetas de encabezado -> campo interno. La comparación pliega tildes y
// mayúsculas, así que "TELÉFONO" y "telefono" dan lo mismo.
var headerFields = map[string]string{
	"fecha":          "date",
	"date":           "date",
	"canal de venta": "channel",
	"pedido":         "code",
	"cliente":        "customer",
	"telefono":       "phone",
	"direccion":      "address",
	"comuna":         "comuna",
	"productos":      "product",
	"unid":           "units",
	"forma de pago":  "payment",
	"boleta":         "document",
	"pago":           "paid",
	"saldo":          "balance",
	"despacho":       "delivery",
	"correo":         "email",
	"estado":         "status",
}

// headerRow busca la fila centinela: la primera cuyo primer valor es
// "FECHA" (o "DATE").
func headerRow(grid [][]string) (int, error) {
	for i, row := range grid {
		if len(row) == 0 {
			continue
		}
		first := search.Fold(strings.TrimSpace(row[0]))
		if first == "fecha" || first == "date" {
			return i, nil
		}
	}
	return 0, ErrHeaderNotFound
}

// columnMap asigna índice de columna -> campo interno según los encabezados.
func columnMap(header []string) map[int]string {
	cols := make(map[int]string, len(header))
	for i, label := range header {
		if field, ok := headerFields[search.Fold(strings.TrimSpace(label))]; ok {
			cols[i] = field
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// contact agrupa los datos de contacto conocidos de un cliente durante la limpieza.
type contact struct {
	phone, address, comuna, email string
}

// Clean transforma la grilla cruda de la planilla en filas listas para importar:
//
//   - Ubica la fila de encabezados por el centinela "FECHA" y mapea columnas.
//   - Rellena hacia abajo las columnas de contexto del pedido (fecha, canal,
//     número, forma de pago, documento, pago, saldo, despacho, estado) para
//     soportar celdas combinadas.
//   - Los datos de contacto (teléfono, dirección, comuna, correo) se rellenan
//     SOLO dentro del mismo cliente: el teléfono de un cliente jamás se filtra
//     a las celdas vacías del siguiente.
//   - Filas totalmente vacías se descartan.
func Clean(grid [][]string) ([]Row, error) {
	h, err := headerRow(grid)
	if err != nil {
		return nil, err
	}
	cols := columnMap(grid[h])

	// Índice inverso campo -> columna para leer celdas por nombre.
	at := make(map[string]int, len(cols))
	for idx, field := range cols {
		at[field] = idx
	}
	get := func(row []string, field string) string {
		idx, ok := at[field]
		if !ok {
			return ""
		}
		return cell(row, idx)
	}

	var (
		rows            []Row
		ctx             Row // últimos valores de contexto vistos (relleno global)
		currentCustomer string
		contacts        = map[string]*contact{}
	)

	for _, raw := range grid[h+1:] {
		if emptyRow(raw) {
			continue
		}

		r := Row{
			Date:         get(raw, "date"),
			Channel:      get(raw, "channel"),
			Code:         get(raw, "code"),
			Customer:     get(raw, "customer"),
			Phone:        parse.Phone(get(raw, "phone")),
			Address:      get(raw, "address"),
			Comuna:       get(raw, "comuna"),
			Email:        get(raw, "email"),
			Product:      get(raw, "product"),
			Units:        get(raw, "units"),
			PaymentForm:  get(raw, "payment"),
			DocumentType: get(raw, "document"),
			Paid:         get(raw, "paid"),
			Balance:      get(raw, "balance"),
			Delivery:     get(raw, "delivery"),
			Status:       get(raw, "status"),
		}

		// Relleno global de contexto: celda vacía hereda la última vista.
		fill(&r.Date, &ctx.Date)
		fill(&r.Channel, &ctx.Channel)
		fill(&r.Code, &ctx.Code)
		fill(&r.PaymentForm, &ctx.PaymentForm)
		fill(&r.DocumentType, &ctx.DocumentType)
		fill(&r.Paid, &ctx.Paid)
		fill(&r.Balance, &ctx.Balance)
		fill(&r.Delivery, &ctx.Delivery)
		fill(&r.Status, &ctx.Status)

		// Cliente: fila con cliente explícito abre (o retoma) su cabecera;
		// fila sin cliente hereda el cliente en curso.
		if r.Customer != "" {
			currentCustomer = r.Customer
			info := contacts[currentCustomer]
			if info == nil {
				info = &contact{}
				contacts[currentCustomer] = info
			}
			remember(&info.phone, r.Phone)
			remember(&info.address, r.Address)
			remember(&info.comuna, r.Comuna)
			remember(&info.email, r.Email)
		} else if currentCustomer != "" {
			r.Customer = currentCustomer
		}

		// Contacto: solo con la información del mismo cliente.
		if info := contacts[currentCustomer]; info != nil && r.Customer == currentCustomer {
			fill(&r.Phone, &info.phone)
			fill(&r.Address, &info.address)
			fill(&r.Comuna, &info.comuna)
			fill(&r.Email, &info.email)
		}

		rows = append(rows, r)
	}
	return rows, nil
}

// fill copia *src en *dst si *dst está vacío; si no, actualiza *src.
func fill(dst, src *string) {
	if *dst == "" {
		*dst = *src
	} else {
		*src = *dst
	}
}

// remember guarda el valor si viene con contenido.
func remember(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
