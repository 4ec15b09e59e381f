package model

// Location представляет каноническую географическую точку с привязанной
// метеостанцией. Пара (Latitude, Longitude) уникальна; имя обычно имеет
// вид "<Город>,<Страна>" и заполняется сервисом геокодирования.
type Location struct {
	ID        int     `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
	Elevation float64 `db:"elevation" json:"elevation"`
	Icao      string  `db:"icao" json:"icao"` // код ICAO ближайшей метеостанции
}
