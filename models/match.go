package models

import "time"

type Match struct {
	ID            int       `json:"id"`
	TournamentID  int       `json:"id_torneo"`
	HomeTeamID    int       `json:"equipo_local"`
	VisitorTeamID int       `json:"equipo_visitante"`
	ScheduledAt   time.Time `json:"fecha"`
	HomeScore     *int      `json:"resultado_local"`
	VisitorScore  *int      `json:"resultado_visitante"`
}

// HasResult reports whether both scores are recorded.
func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.VisitorScore != nil
}
