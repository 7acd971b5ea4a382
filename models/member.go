package models

// MemberRole matches the rol CHECK constraint on miembros_equipo.
type MemberRole string

const (
	RolePlayer     MemberRole = "jugador"
	RoleCaptain    MemberRole = "capitan"
	RoleSubstitute MemberRole = "suplente"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RolePlayer, RoleCaptain, RoleSubstitute:
		return true
	}
	return false
}

type Member struct {
	ID     int        `json:"id"`
	TeamID int        `json:"id_equipo"`
	UserID int        `json:"id_usuario"`
	Role   MemberRole `json:"rol"`
}
