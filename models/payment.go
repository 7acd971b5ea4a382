package models

import "time"

// PaymentStatus matches the estado CHECK constraint on pagos.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pendiente"
	PaymentConfirmed PaymentStatus = "confirmado"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentConfirmed
}

type Payment struct {
	ID           int           `json:"id"`
	TeamID       int           `json:"id_equipo"`
	TournamentID int           `json:"id_torneo"`
	AmountCents  int64         `json:"monto_cent"`
	Status       PaymentStatus `json:"estado"`
	PaidAt       time.Time     `json:"fecha_pago"`
}
