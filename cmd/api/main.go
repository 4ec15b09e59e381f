package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/handler"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/repository"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/service"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/weatherapi"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

func main() {
	// Читаем параметры подключения к БД из переменных окружения
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	// Выполняем миграции (если есть)
	files, err := filepath.Glob("migrations/*.sql")
	if err == nil {
		for _, file := range files {
			if _, err := db.Exec("BEGIN"); err != nil {
				log.Printf("Ошибка при инициации транзакции миграции: %v", err)
				continue
			}
			err := func() error {
				content, readErr := os.ReadFile(file)
				if readErr != nil {
					return readErr
				}
				if _, execErr := db.Exec(string(content)); execErr != nil {
					return execErr
				}
				return nil
			}()
			if err != nil {
				log.Printf("Миграция %s завершилась ошибкой: %v", file, err)
				db.Exec("ROLLBACK")
			} else {
				db.Exec("COMMIT")
				log.Printf("Миграция %s применена.", file)
			}
		}
	}

	// Параметры внешних сервисов погоды
	geocodingURL := os.Getenv("GEOCODING_URL")
	if geocodingURL == "" {
		geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	avwxURL := os.Getenv("AVWX_URL")
	if avwxURL == "" {
		avwxURL = "https://avwx.rest/api/station/near/"
	}
	avwxToken := os.Getenv("AVWX_TOKEN")
	forecastURL := os.Getenv("FORECAST_URL")
	if forecastURL == "" {
		forecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	// Пользователь по умолчанию задается конфигурацией и сеется миграцией
	defaultUserID := 1
	if v := os.Getenv("DEFAULT_USER_ID"); v != "" {
		defaultUserID, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Некорректное значение DEFAULT_USER_ID: %v", err)
		}
	}

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	// Инициализируем клиент внешних сервисов и сервисы
	api := weatherapi.NewClient(geocodingURL, avwxURL, avwxToken, forecastURL)
	userService := service.NewUserService(userRepo)
	locationService := service.NewLocationService(locationRepo, api)
	favoriteService := service.NewFavoriteService(favoriteRepo, locationService, userService)
	forecastService := service.NewForecastService(locationService, api)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(userService, locationService, favoriteService, forecastService, defaultUserID)
	router := gin.Default()
	h.RegisterRoutes(router)

	// Запускаем HTTP-сервер
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
