package service

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/weatherapi"
)

// hourlyTimeLayout - формат меток времени сервиса прогноза (локальное время,
// без смещения часового пояса).
const hourlyTimeLayout = "2006-01-02T15:04"

// ForecastAPI описывает внешний вызов сервиса прогноза погоды.
type ForecastAPI interface {
	HourlyForecast(latitude, longitude float64) (*weatherapi.ForecastResponse, error)
}

// ForecastService получает почасовой прогноз погоды для избранных локаций.
type ForecastService struct {
	locations *LocationService
	api       ForecastAPI
}

// NewForecastService создает новый сервис прогнозов.
func NewForecastService(locations *LocationService, api ForecastAPI) *ForecastService {
	return &ForecastService{locations: locations, api: api}
}

// GetWeatherForecast возвращает почасовой прогноз для локации избранного.
// Ответ сервиса прогноза принимается только если его координаты, округленные
// до целого, совпадают с сохраненными координатами локации - прогноз для
// чужой точки никогда не возвращается. Записи формируются заново при каждом
// вызове и не кэшируются.
func (s *ForecastService) GetWeatherForecast(favorite *model.Favorite) ([]model.WeatherRecord, error) {
	log.Printf("Получение прогноза погоды для избранного %d.", favorite.ID)

	location, err := s.locations.GetLocationByID(favorite.Location.ID)
	if err != nil {
		return nil, err
	}

	forecast, err := s.api.HourlyForecast(location.Latitude, location.Longitude)
	if err != nil {
		log.Printf("Ошибка запроса прогноза для %q: %v", location.Name, err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDataProcessing, err)
	}

	if math.Round(forecast.Latitude) != math.Round(location.Latitude) ||
		math.Round(forecast.Longitude) != math.Round(location.Longitude) {
		return nil, fmt.Errorf("%w: прогноз получен для другой точки (%v, %v)",
			apperrors.ErrDataProcessing, forecast.Latitude, forecast.Longitude)
	}

	hourly := forecast.Hourly
	if len(hourly.Time) != len(hourly.Temperature2m) || len(hourly.Time) != len(hourly.RelativeHumidity) {
		return nil, fmt.Errorf("%w: почасовые массивы разной длины", apperrors.ErrDataProcessing)
	}

	records := make([]model.WeatherRecord, 0, len(hourly.Time))
	for i := range hourly.Time {
		timestamp, err := time.Parse(hourlyTimeLayout, hourly.Time[i])
		if err != nil {
			return nil, fmt.Errorf("%w: некорректная метка времени %q", apperrors.ErrDataProcessing, hourly.Time[i])
		}
		records = append(records, model.WeatherRecord{
			Time:        timestamp,
			Temperature: hourly.Temperature2m[i],
			Humidity:    hourly.RelativeHumidity[i],
		})
	}
	return records, nil
}
