package models

type Team struct {
	ID        int     `json:"id"`
	Name      string  `json:"nombre"`
	CaptainID int     `json:"id_capitan"`
	CrestKey  *string `json:"-"`
	CrestURL  *string `json:"crest_url,omitempty"`
}
