package entity

import "time"

// Customer representa un cliente de la tienda.
type Customer struct {
	ID        int64
	Name      string
	RUT       string // RUT chileno normalizado (sin puntos ni guion)
	Phone     string
	Email     string
	Address   string
	Comuna    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
