package service

import (
	"fmt"
	"log"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/weatherapi"
)

// LocationRepository описывает хранилище локаций, используемое сервисами.
type LocationRepository interface {
	Create(location *model.Location) (int, error)
	GetByID(id int) (*model.Location, error)
	GetByName(name string) (*model.Location, error)
	GetByCoordinates(latitude, longitude float64) (*model.Location, error)
	GetAll() ([]model.Location, error)
	Delete(id int) error
}

// GeocodingAPI описывает внешние вызовы, необходимые для создания локации.
type GeocodingAPI interface {
	SearchLocation(name string) (*weatherapi.GeocodingResult, error)
	NearestStation(latitude, longitude float64) (string, error)
}

// LocationService содержит бизнес-логику, связанную с локациями.
type LocationService struct {
	locationRepo LocationRepository
	api          GeocodingAPI
}

// NewLocationService создает новый сервис локаций.
func NewLocationService(locationRepo LocationRepository, api GeocodingAPI) *LocationService {
	return &LocationService{locationRepo: locationRepo, api: api}
}

// CreateLocation создает локацию по свободному названию места в два этапа:
// геокодирование определяет каноническое имя, координаты и высоту, затем по
// координатам ищется ближайшая метеостанция. Локация сохраняется только
// полностью заполненной. Любой сбой или непригодный ответ внешних сервисов
// возвращается как ErrDataProcessing, повторных попыток нет.
func (s *LocationService) CreateLocation(name string) (*model.Location, error) {
	result, err := s.api.SearchLocation(name)
	if err != nil {
		log.Printf("Ошибка геокодирования %q: %v", name, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDataProcessing, err)
	}

	location := &model.Location{
		Name:      result.Name + "," + result.Country,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Elevation: result.Elevation,
	}

	// Локация - каноническое представление физической точки: пара координат уникальна.
	existing, err := s.locationRepo.GetByCoordinates(location.Latitude, location.Longitude)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске локации по координатам: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("локация %s уже существует: %w", location.Name, apperrors.ErrAlreadyExists)
	}

	icao, err := s.api.NearestStation(location.Latitude, location.Longitude)
	if err != nil {
		log.Printf("Ошибка поиска станции для %q: %v", location.Name, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDataProcessing, err)
	}
	location.Icao = icao

	id, err := s.locationRepo.Create(location)
	if err != nil {
		return nil, err
	}
	location.ID = id
	return location, nil
}

// GetLocationByID возвращает локацию по ID.
func (s *LocationService) GetLocationByID(id int) (*model.Location, error) {
	return s.locationRepo.GetByID(id)
}

// GetLocationByName ищет локацию по точному имени. Возвращает nil, если не найдено.
func (s *LocationService) GetLocationByName(name string) (*model.Location, error) {
	return s.locationRepo.GetByName(name)
}

// GetAllLocations возвращает все локации.
func (s *LocationService) GetAllLocations() ([]model.Location, error) {
	return s.locationRepo.GetAll()
}

// DeleteLocation удаляет локацию по ID.
func (s *LocationService) DeleteLocation(id int) error {
	return s.locationRepo.Delete(id)
}
