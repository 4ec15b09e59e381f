package model

// Favorite представляет избранную локацию пользователя. У пользователя не может
// быть двух избранных с одинаковым именем и двух избранных с одной и той же
// локацией (уникальные пары user+name и user+location).
type Favorite struct {
	ID       int      `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	User     User     `db:"user" json:"user"`
	Location Location `db:"location" json:"location"`
}
