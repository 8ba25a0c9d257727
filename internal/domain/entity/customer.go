package entity

import "time"

// Customer representa un cliente opcionalmente asociado a una venta.
type Customer struct {
	ID        string
	Name      string
	Document  string // NIT o CI
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
