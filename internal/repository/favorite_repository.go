package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// FavoriteRepository обеспечивает доступ к избранным локациям в базе данных.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository создает новый репозиторий для избранного.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// selectFavorites возвращает избранные вместе с вложенными пользователем и локацией.
const selectFavorites = `SELECT f.id, f.name,
       u.id AS "user.id", u.firstname AS "user.firstname", u.lastname AS "user.lastname",
       l.id AS "location.id", l.name AS "location.name", l.latitude AS "location.latitude",
       l.longitude AS "location.longitude", l.elevation AS "location.elevation", l.icao AS "location.icao"
  FROM favorites f
  JOIN users u ON u.id = f.user_id
  JOIN locations l ON l.id = f.location_id`

// Create сохраняет новую избранную локацию. Возвращает ID созданной записи.
// Нарушение уникальности пар (user, name) и (user, location) переводится
// в ErrAlreadyExists - на эти ограничения опираются конкурентные вставки.
func (r *FavoriteRepository) Create(favorite *model.Favorite) (int, error) {
	query := `INSERT INTO favorites (user_id, location_id, name) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(query, favorite.User.ID, favorite.Location.ID, favorite.Name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("избранное %s: %w", favorite.Name, apperrors.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("не удалось создать избранное: %w", err)
	}
	return id, nil
}

// GetByID возвращает избранное по идентификатору вместе с пользователем и локацией.
func (r *FavoriteRepository) GetByID(id int) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Get(&favorite, selectFavorites+" WHERE f.id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("избранное с id %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &favorite, nil
}

// GetAll возвращает все избранные локации.
func (r *FavoriteRepository) GetAll() ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	if err := r.db.Select(&favorites, selectFavorites+" ORDER BY f.id"); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка избранного: %w", err)
	}
	return favorites, nil
}

// GetByUserID возвращает избранные локации пользователя.
func (r *FavoriteRepository) GetByUserID(userID int) ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	if err := r.db.Select(&favorites, selectFavorites+" WHERE f.user_id=$1 ORDER BY f.id", userID); err != nil {
		return nil, fmt.Errorf("ошибка при получении избранного пользователя: %w", err)
	}
	return favorites, nil
}

// ExistsByNameAndUserID проверяет, есть ли у пользователя избранное с таким именем.
func (r *FavoriteRepository) ExistsByNameAndUserID(name string, userID int) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM favorites WHERE name=$1 AND user_id=$2)", name, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке имени избранного: %w", err)
	}
	return exists, nil
}

// ExistsByLocationAndUserID проверяет, добавил ли пользователь локацию в избранное.
func (r *FavoriteRepository) ExistsByLocationAndUserID(locationID, userID int) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM favorites WHERE location_id=$1 AND user_id=$2)", locationID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке локации избранного: %w", err)
	}
	return exists, nil
}

// Delete удаляет избранное по идентификатору.
func (r *FavoriteRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM favorites WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить избранное: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("избранное с id %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
