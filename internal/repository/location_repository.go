package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// LocationRepository обеспечивает доступ к данным локаций в базе данных.
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository создает новый репозиторий для локаций.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create сохраняет новую локацию. Возвращает ID созданной записи.
// Предварительная проверка координат выполняется в сервисе; ограничение
// уникальности (latitude, longitude) в базе остается окончательным арбитром,
// его нарушение переводится в ErrAlreadyExists.
func (r *LocationRepository) Create(location *model.Location) (int, error) {
	query := `INSERT INTO locations (name, latitude, longitude, elevation, icao)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRow(query, location.Name, location.Latitude, location.Longitude,
		location.Elevation, location.Icao).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("локация %s: %w", location.Name, apperrors.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("не удалось создать локацию: %w", err)
	}
	return id, nil
}

// GetByID получает локацию по ее идентификатору.
func (r *LocationRepository) GetByID(id int) (*model.Location, error) {
	var location model.Location
	err := r.db.Get(&location, "SELECT * FROM locations WHERE id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("локация с id %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &location, nil
}

// GetByName ищет локацию по точному имени. Возвращает nil, если не найдено.
func (r *LocationRepository) GetByName(name string) (*model.Location, error) {
	var location model.Location
	err := r.db.Get(&location, "SELECT * FROM locations WHERE name=$1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// GetByCoordinates ищет локацию по точной паре координат. Возвращает nil, если не найдено.
func (r *LocationRepository) GetByCoordinates(latitude, longitude float64) (*model.Location, error) {
	var location model.Location
	err := r.db.Get(&location, "SELECT * FROM locations WHERE latitude=$1 AND longitude=$2", latitude, longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// GetAll возвращает все локации.
func (r *LocationRepository) GetAll() ([]model.Location, error) {
	locations := []model.Location{}
	if err := r.db.Select(&locations, "SELECT * FROM locations ORDER BY id"); err != nil {
		return nil, fmt.Errorf("ошибка при получении списка локаций: %w", err)
	}
	return locations, nil
}

// Delete удаляет локацию по идентификатору.
func (r *LocationRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM locations WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить локацию: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("локация с id %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
