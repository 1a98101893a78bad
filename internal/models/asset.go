package models

// Asset - одна строка датасета с расположением теневого навеса (그늘막)
type Asset struct {
	ManageNumber int     `json:"manage_number"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	SiteName     string  `json:"site_name"`
	Address      string  `json:"address"`
}
