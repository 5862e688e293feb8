// Package sqlite implementa los repositorios del dominio sobre un archivo
// SQLite (driver modernc.org/sqlite, sin CGo). Que la base sea un único
// archivo es parte del diseño: respaldar es copiarlo.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		rut        TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		comuna     TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	// RUT único solo cuando viene informado: muchos clientes antiguos no lo tienen.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_rut ON customers(rut) WHERE rut <> ''`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		code          TEXT NOT NULL UNIQUE,
		customer_id   INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		date          DATETIME NOT NULL,
		channel       TEXT NOT NULL DEFAULT '',
		payment_form  TEXT NOT NULL DEFAULT '',
		document_type TEXT NOT NULL DEFAULT '',
		delivery      TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT '',
		amount_paid   TEXT NOT NULL DEFAULT '0',
		balance       TEXT NOT NULL DEFAULT '0',
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id   INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product    TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		unit_price TEXT NOT NULL DEFAULT '0',
		total      TEXT NOT NULL DEFAULT '0'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
}

// Open abre (o crea) el archivo de la base y aplica las migraciones.
// foreign_keys va en el DSN para que el ON DELETE CASCADE rija en todas las conexiones.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	// Una aplicación de escritorio: un solo escritor evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migración: %w", err)
		}
	}
	return nil
}
