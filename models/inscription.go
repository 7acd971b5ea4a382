package models

import "time"

type Inscription struct {
	ID           int       `json:"id"`
	TeamID       int       `json:"id_equipo"`
	TournamentID int       `json:"id_torneo"`
	RegisteredAt time.Time `json:"fecha_inscripcion"`
}
