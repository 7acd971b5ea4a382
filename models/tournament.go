package models

import "time"

// TournamentStatus matches the estado CHECK constraint on torneos.
// The field is permissive: any of the three values may be set directly,
// there is no forward-only ordering.
type TournamentStatus string

const (
	StatusScheduled  TournamentStatus = "programado"
	StatusInProgress TournamentStatus = "en_curso"
	StatusFinished   TournamentStatus = "finalizado"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"nombre"`
	Description *string          `json:"descripcion,omitempty"`
	StartDate   time.Time        `json:"fecha_inicio"`
	EndDate     time.Time        `json:"fecha_fin"`
	MaxTeams    int              `json:"max_equipos"`
	Status      TournamentStatus `json:"estado"`
	StreamURL   *string          `json:"stream_url,omitempty"`
	OrganizerID int              `json:"id_organizador"`
	BannerKey   *string          `json:"-"`
	BannerURL   *string          `json:"banner_url,omitempty"`
}

// TournamentSummary aggregates a tournament with its dependent rows.
type TournamentSummary struct {
	Tournament   *Tournament   `json:"torneo"`
	Inscriptions []Inscription `json:"inscripciones"`
	Payments     []Payment     `json:"pagos"`
	Matches      []Match       `json:"partidos"`
}
