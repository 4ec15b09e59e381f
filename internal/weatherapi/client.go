// Package weatherapi содержит HTTP-клиент внешних сервисов погоды:
// геокодирование (Open-Meteo), поиск ближайшей станции (AVWX) и
// почасовой прогноз (Open-Meteo). Все вызовы синхронные, без повторов.
package weatherapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client выполняет запросы к внешним сервисам погоды.
type Client struct {
	geocodingURL string
	avwxURL      string
	avwxToken    string
	forecastURL  string
	httpClient   *http.Client
}

// NewClient создает новый клиент внешних сервисов.
func NewClient(geocodingURL, avwxURL, avwxToken, forecastURL string) *Client {
	return &Client{
		geocodingURL: geocodingURL,
		avwxURL:      avwxURL,
		avwxToken:    avwxToken,
		forecastURL:  forecastURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithHTTP создает клиент с заданным http.Client (для тестов).
func NewClientWithHTTP(geocodingURL, avwxURL, avwxToken, forecastURL string, httpClient *http.Client) *Client {
	c := NewClient(geocodingURL, avwxURL, avwxToken, forecastURL)
	c.httpClient = httpClient
	return c
}

// GeocodingResult представляет первого кандидата ответа геокодирования.
type GeocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

type geocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

type stationEntry struct {
	Station struct {
		Icao string `json:"icao"`
	} `json:"station"`
}

// ForecastResponse представляет ответ сервиса прогноза: координаты точки,
// для которой сервис фактически ответил, и параллельные почасовые массивы.
type ForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time             []string  `json:"time"`
		Temperature2m    []float64 `json:"temperature_2m"`
		RelativeHumidity []int     `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

// SearchLocation запрашивает геокодирование по свободному названию места.
// Используется только первый кандидат в порядке ранжирования сервиса.
func (c *Client) SearchLocation(name string) (*GeocodingResult, error) {
	var response geocodingResponse
	requestURL := c.geocodingURL + "?name=" + url.QueryEscape(name) + "&count=1"
	if err := c.getJSON(requestURL, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("геокодирование %q: пустой список результатов", name)
	}
	return &response.Results[0], nil
}

// NearestStation возвращает код ICAO ближайшей к координатам метеостанции.
func (c *Client) NearestStation(latitude, longitude float64) (string, error) {
	var stations []stationEntry
	requestURL := c.avwxURL + formatCoordinate(latitude) + "," + formatCoordinate(longitude) +
		"?n=1&token=" + c.avwxToken
	if err := c.getJSON(requestURL, &stations); err != nil {
		return "", err
	}
	if len(stations) == 0 || stations[0].Station.Icao == "" {
		return "", fmt.Errorf("поиск станции (%v, %v): пустой список результатов", latitude, longitude)
	}
	return stations[0].Station.Icao, nil
}

// HourlyForecast запрашивает почасовой прогноз температуры и влажности.
func (c *Client) HourlyForecast(latitude, longitude float64) (*ForecastResponse, error) {
	var response ForecastResponse
	requestURL := c.forecastURL + "?latitude=" + formatCoordinate(latitude) +
		"&longitude=" + formatCoordinate(longitude) +
		"&hourly=temperature_2m,relative_humidity_2m"
	if err := c.getJSON(requestURL, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// getJSON выполняет GET-запрос и разбирает JSON-ответ в target.
func (c *Client) getJSON(requestURL string, target interface{}) error {
	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return fmt.Errorf("запрос к внешнему сервису не выполнен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("внешний сервис вернул статус %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("не удалось разобрать ответ внешнего сервиса: %w", err)
	}
	return nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
