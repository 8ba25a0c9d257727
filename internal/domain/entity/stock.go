package entity

import "time"

// Stock representa el contador de existencias de un producto en una sucursal.
// Quantity se expresa en unidades base (enteras) y nunca puede ser negativo.
// Existe exactamente una fila por par (producto, sucursal); se crea de forma
// perezosa con Quantity = 0 en el primer movimiento.
type Stock struct {
	ID        string
	ProductID string
	BranchID  string
	Quantity  int64 // unidades base disponibles
	Reserved  int64 // unidades base reservadas (apartados, aún no descontadas)
	UpdatedAt time.Time
}
