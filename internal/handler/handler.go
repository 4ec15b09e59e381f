package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
// defaultUserID - идентификатор пользователя по умолчанию: подставляется,
// когда запрос не называет пользователя, и защищен от удаления.
type Handler struct {
	UserService     *service.UserService
	LocationService *service.LocationService
	FavoriteService *service.FavoriteService
	ForecastService *service.ForecastService
	defaultUserID   int
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(us *service.UserService, ls *service.LocationService,
	fs *service.FavoriteService, ws *service.ForecastService, defaultUserID int) *Handler {
	return &Handler{
		UserService:     us,
		LocationService: ls,
		FavoriteService: fs,
		ForecastService: ws,
		defaultUserID:   defaultUserID,
	}
}

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.DELETE("/:id", h.DeleteUser)
	}
	locations := router.Group("/locations")
	{
		locations.POST("", h.CreateLocation)
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
		locations.DELETE("/:id", h.DeleteLocation)
	}
	favorites := router.Group("/favorites")
	{
		favorites.POST("", h.CreateFavorite)
		favorites.GET("", h.ListFavorites)
		favorites.GET("/user/:id", h.ListFavoritesByUser)
		favorites.GET("/:id", h.GetFavorite)
		favorites.DELETE("/:id", h.DeleteFavorite)
	}
	router.GET("/weather/:favoriteId", h.GetWeatherForecast)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type createUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// CreateUser обработчик для POST /users - регистрирует нового пользователя.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Firstname == "" || req.Lastname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Необходимо указать имя и фамилию пользователя."})
		return
	}
	user, err := h.UserService.CreateUser(req.Firstname, req.Lastname)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers обработчик для GET /users - возвращает список всех пользователей.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить пользователей"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser обработчик для GET /users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.UserService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser обработчик для DELETE /users/:id. Пользователь по умолчанию
// защищен от удаления здесь, на границе, независимо от состояния базы.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if id == h.defaultUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Пользователя по умолчанию удалить нельзя."})
		return
	}
	if err := h.UserService.DeleteUser(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateLocation обработчик для POST /locations?locationName=X.
func (h *Handler) CreateLocation(c *gin.Context) {
	name := c.Query("locationName")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Необходимо указать название локации (locationName)."})
		return
	}
	location, err := h.LocationService.CreateLocation(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, location)
}

// ListLocations обработчик для GET /locations - возвращает список всех локаций.
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationService.GetAllLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить локации"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation обработчик для GET /locations/:id.
func (h *Handler) GetLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	location, err := h.LocationService.GetLocationByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation обработчик для DELETE /locations/:id.
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.LocationService.DeleteLocation(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type createFavoriteRequest struct {
	Name string `json:"name"`
	User struct {
		ID int `json:"id"`
	} `json:"user"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
}

// CreateFavorite обработчик для POST /favorites. Если пользователь не указан
// (или указан id 0), подставляется пользователь по умолчанию.
func (h *Handler) CreateFavorite(c *gin.Context) {
	var req createFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Location.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Необходимо указать имя избранного и локацию."})
		return
	}
	userID := req.User.ID
	if userID == 0 {
		userID = h.defaultUserID
	}
	if userID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Идентификатор пользователя должен быть больше 0."})
		return
	}

	favorite, err := h.FavoriteService.CreateFavorite(req.Location.Name, userID, req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, favorite)
}

// ListFavorites обработчик для GET /favorites - возвращает все избранные локации.
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.FavoriteService.GetAllFavorites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить избранное"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// ListFavoritesByUser обработчик для GET /favorites/user/:id.
func (h *Handler) ListFavoritesByUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	favorites, err := h.FavoriteService.GetFavoritesByUserID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// GetFavorite обработчик для GET /favorites/:id.
func (h *Handler) GetFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	favorite, err := h.FavoriteService.GetFavoriteByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, favorite)
}

// DeleteFavorite обработчик для DELETE /favorites/:id.
func (h *Handler) DeleteFavorite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.FavoriteService.DeleteFavorite(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWeatherForecast обработчик для GET /weather/:favoriteId - возвращает
// почасовой прогноз для локации избранного. Избранное без заполненной локации
// отклоняется до обращения к внешнему сервису.
func (h *Handler) GetWeatherForecast(c *gin.Context) {
	id, ok := pathID(c, "favoriteId")
	if !ok {
		return
	}
	favorite, err := h.FavoriteService.GetFavoriteByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if favorite.Location.ID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Идентификатор локации должен быть больше 0."})
		return
	}

	records, err := h.ForecastService.GetWeatherForecast(favorite)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// pathID разбирает положительный целочисленный параметр пути.
// При некорректном значении сам пишет ответ 400 и возвращает ok=false.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Идентификатор должен быть больше 0."})
		return 0, false
	}
	return id, true
}
