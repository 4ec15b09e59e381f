package model

// User представляет пользователя сервиса. Пара (Firstname, Lastname) уникальна.
type User struct {
	ID        int    `db:"id" json:"id"`
	Firstname string `db:"firstname" json:"firstname"`
	Lastname  string `db:"lastname" json:"lastname"`
}
