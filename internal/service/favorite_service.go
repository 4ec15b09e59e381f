package service

import (
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
)

// FavoriteRepository описывает хранилище избранных локаций.
type FavoriteRepository interface {
	Create(favorite *model.Favorite) (int, error)
	GetByID(id int) (*model.Favorite, error)
	GetAll() ([]model.Favorite, error)
	GetByUserID(userID int) ([]model.Favorite, error)
	ExistsByNameAndUserID(name string, userID int) (bool, error)
	ExistsByLocationAndUserID(locationID, userID int) (bool, error)
	Delete(id int) error
}

// FavoriteService содержит бизнес-логику, связанную с избранными локациями.
type FavoriteService struct {
	favoriteRepo FavoriteRepository
	locations    *LocationService
	users        *UserService
}

// NewFavoriteService создает новый сервис избранного.
func NewFavoriteService(favoriteRepo FavoriteRepository, locations *LocationService, users *UserService) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, locations: locations, users: users}
}

// CreateFavorite создает избранную локацию пользователя. Проверки идут по
// порядку, каждая прерывает создание без побочных эффектов: имя избранного
// свободно у пользователя, пользователь существует, локация разрешена или
// создана через геокодирование. Новая локация, созданная на третьем шаге,
// не откатывается, если финальная вставка избранного не удалась.
func (s *FavoriteService) CreateFavorite(locationName string, userID int, name string) (*model.Favorite, error) {
	// Дешевая проверка имени выполняется первой, до любых внешних вызовов.
	exists, err := s.favoriteRepo.ExistsByNameAndUserID(name, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("избранное с именем %s уже существует у пользователя %d: %w",
			name, userID, apperrors.ErrAlreadyExists)
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	location, err := s.resolveLocation(locationName, userID)
	if err != nil {
		return nil, err
	}

	favorite := &model.Favorite{Name: name, User: *user, Location: *location}
	id, err := s.favoriteRepo.Create(favorite)
	if err != nil {
		return nil, err
	}
	favorite.ID = id
	return favorite, nil
}

// resolveLocation находит существующую локацию по имени или создает новую через
// геокодирование. Для существующей локации дополнительно проверяется, что
// пользователь еще не добавил эту точку в избранное под другим именем.
func (s *FavoriteService) resolveLocation(locationName string, userID int) (*model.Location, error) {
	location, err := s.locations.GetLocationByName(locationName)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске локации: %w", err)
	}
	if location != nil {
		favorited, err := s.favoriteRepo.ExistsByLocationAndUserID(location.ID, userID)
		if err != nil {
			return nil, err
		}
		if favorited {
			return nil, fmt.Errorf("локация %s уже в избранном пользователя %d: %w",
				location.Name, userID, apperrors.ErrAlreadyExists)
		}
		return location, nil
	}
	// Конкурентная вставка той же точки проявится здесь как ErrAlreadyExists
	// от ограничения координат и возвращается вызывающему без повторов.
	return s.locations.CreateLocation(locationName)
}

// GetAllFavorites возвращает все избранные локации.
func (s *FavoriteService) GetAllFavorites() ([]model.Favorite, error) {
	return s.favoriteRepo.GetAll()
}

// GetFavoritesByUserID возвращает избранные локации пользователя.
func (s *FavoriteService) GetFavoritesByUserID(userID int) ([]model.Favorite, error) {
	return s.favoriteRepo.GetByUserID(userID)
}

// GetFavoriteByID возвращает избранное по ID.
func (s *FavoriteService) GetFavoriteByID(id int) (*model.Favorite, error) {
	return s.favoriteRepo.GetByID(id)
}

// DeleteFavorite удаляет избранное по ID.
func (s *FavoriteService) DeleteFavorite(id int) error {
	return s.favoriteRepo.Delete(id)
}
