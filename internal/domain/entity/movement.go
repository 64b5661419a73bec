package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flujos de un movimiento.
const (
	FlowIn  = "in"  // entrada
	FlowOut = "out" // salida
)

// Estados de un movimiento. El núcleo solo escribe "ok"; void y corrected
// quedan reservados para flujos de corrección futuros.
const (
	StatusOK        = "ok"
	StatusVoid      = "void"
	StatusCorrected = "corrected"
)

// ValidFlow indica si s es un flujo conocido.
func ValidFlow(s string) bool {
	return s == FlowIn || s == FlowOut
}

// Movement es un evento del libro de movimientos: una pesada escaneada o
// cargada a mano. Inmutable una vez escrito; solo se elimina, nunca se edita.
// FlavorName es una copia desnormalizada del nombre del gusto al momento de
// la escritura (sin FK: el historial sobrevive a renombres del catálogo).
type Movement struct {
	ID         string
	CreatedAt  time.Time
	Flow       string
	FlavorName string
	Barcode    string
	Raw        string
	WeightKg   *decimal.Decimal
	PricePerKg *decimal.Decimal
	Total      *decimal.Decimal // round(WeightKg * PricePerKg); nil si falta alguno
	Status     string
}
