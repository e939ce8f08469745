package domain

type User struct {
	ID               string   `json:"user_id"`
	ArtInterests     string   `json:"art_interests"`
	RegionPreference string   `json:"region_preference"`
	Budget           *float64 `json:"budget,omitempty"`
}
