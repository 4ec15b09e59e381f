package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository обеспечивает доступ к данным пользователей в базе данных.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create добавляет нового пользователя в базу. Возвращает ID созданного пользователя.
// При нарушении уникальности пары (firstname, lastname) возвращает ErrAlreadyExists.
func (r *UserRepository) Create(user *model.User) (int, error) {
	query := `INSERT INTO users (firstname, lastname) VALUES ($1, $2) RETURNING id`
	var id int
	err := r.db.QueryRow(query, user.Firstname, user.Lastname).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("пользователь %s %s: %w", user.Firstname, user.Lastname, apperrors.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("не удалось создать пользователя: %w", err)
	}
	return id, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с id %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetByName ищет пользователя по имени и фамилии. Возвращает nil, если не найдено.
func (r *UserRepository) GetByName(firstname, lastname string) (*model.User, error) {
	var user model.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE firstname=$1 AND lastname=$2", firstname, lastname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetAll возвращает всех пользователей.
func (r *UserRepository) GetAll() ([]model.User, error) {
	users := []model.User{}
	if err := r.db.Select(&users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	return users, nil
}

// Delete удаляет пользователя по идентификатору.
func (r *UserRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM users WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить пользователя: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("пользователь с id %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
