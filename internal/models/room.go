package models

// Room is a bookable hotel room. Number is the stable human-facing
// identifier printed on the door; ID is the registry key.
type Room struct {
	ID       string     `json:"id" yaml:"id"`
	Number   string     `json:"number" yaml:"number"`
	Category string     `json:"category" yaml:"category"`
	Rate     float64    `json:"rate" yaml:"rate"`
	Status   RoomStatus `json:"status" yaml:"status"`
}
