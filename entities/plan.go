package entities

type Plan struct {
	ID      string  `gorm:"primary_key" json:"id"` // e.g. "basic", "pro"
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Amount  float64 `json:"amount"`
	Active  bool    `gorm:"default:true" json:"active"`
}
