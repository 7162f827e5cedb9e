package models

import "time"

// Race is one entry of a season schedule scraped from the championship page.
type Race struct {
	Round    int
	RaceName string
	Date     string // нормализованная "2006-01-02" или исходный текст ячейки
	DateObj  time.Time
	Link     string // относительная ссылка вида "/wiki/2025_Bahrain_Grand_Prix"
}

// Classification is the final point allocation of one race, driver name to
// points. An empty map means the race page gave no usable data.
type Classification map[string]float64

type StandingsEntry struct {
	Driver string
	Points float64
}

// Choice is one keyboard button: a visible label plus the navigation token
// round-tripped through the button payload.
type Choice struct {
	Label string
	Token string
}
