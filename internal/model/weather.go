package model

import "time"

// WeatherRecord представляет одно почасовое значение прогноза.
// Записи не сохраняются в базе и формируются заново при каждом запросе.
type WeatherRecord struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
}
