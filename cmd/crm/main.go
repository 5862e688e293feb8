// crm es la aplicación de escritorio (terminal) para gestionar clientes y
// pedidos de la tienda. Se maneja con comandos posicionales y menús
// interactivos; no usa flags.
//
//	crm clientes    gestión de clientes (listar, buscar, crear, editar, eliminar)
//	crm pedidos     gestión de pedidos e ítems
//	crm importar    importación masiva desde la planilla xlsx
//	crm respaldar   copia la base a la carpeta de respaldo
//	crm snapshot    copia con marca de tiempo (no pisa respaldos anteriores)
//	crm fusionar    incorpora los registros de otro archivo de base
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raizdiseno/crm-pyme/internal/application/importer"
	"github.com/raizdiseno/crm-pyme/internal/application/usecase"
	"github.com/raizdiseno/crm-pyme/internal/infrastructure/backup"
	"github.com/raizdiseno/crm-pyme/internal/infrastructure/excel"
	"github.com/raizdiseno/crm-pyme/internal/infrastructure/sqlite"
	"github.com/raizdiseno/crm-pyme/pkg/config"
	"github.com/raizdiseno/crm-pyme/pkg/logger"
)

type app struct {
	in  *bufio.Reader
	out io.Writer
	log *logger.Logger

	customers *usecase.CustomerUseCase
	orders    *usecase.OrderUseCase
	merge     *usecase.MergeUseCase
	importer  *importer.Importer
	backups   *backup.Manager
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	backups := backup.NewManager(cfg.Store.Path, cfg.Backup)
	if restored, err := backups.RestoreIfMissing(); err != nil {
		log.Fatal().Err(err).Msg("restaurar respaldo")
	} else if restored {
		log.Info().Str("db", cfg.Store.Path).Msg("base restaurada desde el respaldo")
	}

	db, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	customerRepo := sqlite.NewCustomerRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	a := &app{
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		log:       log,
		customers: usecase.NewCustomerUseCase(customerRepo, orderRepo),
		orders:    usecase.NewOrderUseCase(orderRepo, customerRepo, txRunner),
		merge:     usecase.NewMergeUseCase(txRunner),
		importer:  importer.New(txRunner, log),
		backups:   backups,
	}

	if len(os.Args) < 2 {
		a.usage()
		os.Exit(1)
	}
	args := os.Args[2:]

	// Los argumentos posicionales acortan el camino: "crm clientes perez"
	// busca directo, "crm importar ventas.xlsx" no pregunta la ruta.
	var mutated bool
	switch os.Args[1] {
	case "clientes":
		if len(args) > 0 {
			a.printCustomerSearch(strings.Join(args, " "))
		} else {
			mutated = a.runCustomers()
		}
	case "pedidos":
		if len(args) > 0 {
			a.printOrderSearch(args[0], args[1:])
		} else {
			mutated = a.runOrders()
		}
	case "importar":
		mutated = a.runImport(firstArg(args))
	case "respaldar":
		a.runBackup()
	case "snapshot":
		a.runSnapshot()
	case "fusionar":
		mutated = a.runMerge(firstArg(args))
	default:
		fmt.Fprintf(a.out, "comando desconocido: %s\n\n", os.Args[1])
		a.usage()
		os.Exit(1)
	}

	// Respaldo de cierre: después de cualquier cambio se intenta copiar la
	// base. Si falla (sin carpeta, disco desconectado) solo se advierte.
	if mutated {
		if _, err := a.backups.Backup(); err != nil {
			log.Warn().Err(err).Msg("respaldo de cierre")
		}
	}
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func (a *app) usage() {
	fmt.Fprintln(a.out, "uso: crm <comando>")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "comandos:")
	fmt.Fprintln(a.out, "  clientes    gestión de clientes")
	fmt.Fprintln(a.out, "  pedidos     gestión de pedidos")
	fmt.Fprintln(a.out, "  importar    importar planilla xlsx de ventas")
	fmt.Fprintln(a.out, "  respaldar   copiar la base a la carpeta de respaldo")
	fmt.Fprintln(a.out, "  snapshot    respaldo con marca de tiempo")
	fmt.Fprintln(a.out, "  fusionar    incorporar registros de otro archivo de base")
}

func (a *app) runImport(path string) bool {
	if path == "" {
		path = a.prompt("Ruta de la planilla xlsx")
	}
	if path == "" {
		fmt.Fprintln(a.out, "importación cancelada")
		return false
	}

	grid, err := excel.ReadGrid(path)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	sum, err := a.importer.Import(grid)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	fmt.Fprintf(a.out, "filas leídas: %d (descartadas %d)\n", sum.Rows, sum.Discarded)
	fmt.Fprintf(a.out, "clientes: %d nuevos, %d actualizados\n", sum.CustomersCreated, sum.CustomersUpdated)
	fmt.Fprintf(a.out, "pedidos:  %d nuevos, %d ya existentes\n", sum.OrdersCreated, sum.OrdersMatched)
	fmt.Fprintf(a.out, "ítems:    %d nuevos, %d ya existentes\n", sum.ItemsCreated, sum.ItemsSkipped)
	return sum.CustomersCreated+sum.CustomersUpdated+sum.OrdersCreated+sum.ItemsCreated > 0
}

func (a *app) runBackup() {
	dst, err := a.backups.Backup()
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "respaldo creado en", dst)
}

func (a *app) runSnapshot() {
	dst, err := a.backups.Snapshot()
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "snapshot creado en", dst)
}

func (a *app) runMerge(path string) bool {
	if path == "" {
		path = a.prompt("Ruta del archivo de base a fusionar")
	}
	if path == "" {
		fmt.Fprintln(a.out, "fusión cancelada")
		return false
	}

	snap, err := sqlite.ReadSnapshot(path)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	sum, err := a.merge.Merge(snap)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return false
	}

	fmt.Fprintf(a.out, "clientes: %d nuevos, %d ya existentes\n", sum.CustomersCreated, sum.CustomersMatched)
	fmt.Fprintf(a.out, "pedidos:  %d nuevos, %d ya existentes\n", sum.OrdersCreated, sum.OrdersSkipped)
	fmt.Fprintf(a.out, "ítems:    %d nuevos, %d ya existentes\n", sum.ItemsCreated, sum.ItemsSkipped)
	return sum.CustomersCreated+sum.OrdersCreated+sum.ItemsCreated > 0
}
