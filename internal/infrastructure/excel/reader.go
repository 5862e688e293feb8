// Package excel lee planillas xlsx y las entrega como grilla de texto.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadGrid abre el archivo xlsx y devuelve la primera hoja completa como
// celdas de texto. La interpretación de encabezados y filas queda en manos
// del importador.
func ReadGrid(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("la planilla %s no tiene hojas", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return rows, nil
}
