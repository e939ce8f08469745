package domain

type Event struct {
	ID          string   `json:"event_id"`
	Name        string   `json:"name,omitempty"`
	ArtForms    string   `json:"art_forms"`
	Genres      string   `json:"genres"`
	Region      string   `json:"region"`
	TicketPrice *float64 `json:"ticket_price"`
	ArtistID    string   `json:"artist_id,omitempty"`
}

type Artist struct {
	ID   string `json:"artist_id"`
	Name string `json:"name,omitempty"`
}
