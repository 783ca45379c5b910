package model

import "time"

// FleetReport is the input of the spreadsheet export of registered motos.
type FleetReport struct {
	PlateFilter string
	GeneratedAt time.Time
	Motos       []Moto
}
