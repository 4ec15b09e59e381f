package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/repository"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/service"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/weatherapi"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Бот работает от имени пользователя по умолчанию: показывает его избранные
// локации, добавляет новые и присылает прогноз погоды.
func main() {
	// Подключение к базе данных
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "db"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort,
		os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"),
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	geocodingURL := os.Getenv("GEOCODING_URL")
	if geocodingURL == "" {
		geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	avwxURL := os.Getenv("AVWX_URL")
	if avwxURL == "" {
		avwxURL = "https://avwx.rest/api/station/near/"
	}
	forecastURL := os.Getenv("FORECAST_URL")
	if forecastURL == "" {
		forecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	defaultUserID := 1
	if v := os.Getenv("DEFAULT_USER_ID"); v != "" {
		defaultUserID, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Некорректное значение DEFAULT_USER_ID: %v", err)
		}
	}

	// Инициализация репозиториев и сервисов
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	api := weatherapi.NewClient(geocodingURL, avwxURL, os.Getenv("AVWX_TOKEN"), forecastURL)
	userService := service.NewUserService(userRepo)
	locationService := service.NewLocationService(locationRepo, api)
	favoriteService := service.NewFavoriteService(favoriteRepo, locationService, userService)
	forecastService := service.NewForecastService(locationService, api)

	// Инициализация Telegram Bot API
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		msg := update.Message
		if msg == nil || !msg.IsCommand() {
			continue
		}
		chatID := msg.Chat.ID

		switch msg.Command() {
		case "start":
			bot.Send(tgbotapi.NewMessage(chatID,
				"Команды:\n/favorites - список избранных локаций\n"+
					"/add <имя> <место> - добавить избранное\n"+
					"/weather <имя> - прогноз погоды для избранного"))

		case "favorites":
			favorites, err := favoriteService.GetFavoritesByUserID(defaultUserID)
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Ошибка получения избранного."))
				continue
			}
			if len(favorites) == 0 {
				bot.Send(tgbotapi.NewMessage(chatID, "Избранных локаций пока нет."))
				continue
			}
			var sb strings.Builder
			for _, f := range favorites {
				fmt.Fprintf(&sb, "%s - %s (станция %s)\n", f.Name, f.Location.Name, f.Location.Icao)
			}
			bot.Send(tgbotapi.NewMessage(chatID, sb.String()))

		case "add":
			args := strings.SplitN(strings.TrimSpace(msg.CommandArguments()), " ", 2)
			if len(args) < 2 {
				bot.Send(tgbotapi.NewMessage(chatID, "Использование: /add <имя> <место>"))
				continue
			}
			favorite, err := favoriteService.CreateFavorite(args[1], defaultUserID, args[0])
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Не удалось добавить избранное: "+err.Error()))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Добавлено: %s - %s", favorite.Name, favorite.Location.Name)))

		case "weather":
			name := strings.TrimSpace(msg.CommandArguments())
			if name == "" {
				bot.Send(tgbotapi.NewMessage(chatID, "Использование: /weather <имя>"))
				continue
			}
			favorite := findFavorite(favoriteService, defaultUserID, name)
			if favorite == nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Избранное с таким именем не найдено."))
				continue
			}
			records, err := forecastService.GetWeatherForecast(favorite)
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, "Ошибка получения прогноза."))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID, formatForecast(favorite, records)))
		}
	}
}

// findFavorite ищет избранное пользователя по имени.
func findFavorite(favorites *service.FavoriteService, userID int, name string) *model.Favorite {
	list, err := favorites.GetFavoritesByUserID(userID)
	if err != nil {
		return nil
	}
	for i := range list {
		if strings.EqualFold(list[i].Name, name) {
			return &list[i]
		}
	}
	return nil
}

// formatForecast собирает текст прогноза (первые 12 часов).
func formatForecast(favorite *model.Favorite, records []model.WeatherRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Прогноз для %s (%s):\n", favorite.Name, favorite.Location.Name)
	for i, r := range records {
		if i == 12 {
			break
		}
		fmt.Fprintf(&sb, "%s  %.1f°C  %d%%\n", r.Time.Format("02.01 15:04"), r.Temperature, r.Humidity)
	}
	return sb.String()
}
