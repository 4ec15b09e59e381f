package service

import (
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
)

// UserRepository описывает хранилище пользователей, используемое сервисами.
type UserRepository interface {
	Create(user *model.User) (int, error)
	GetByID(id int) (*model.User, error)
	GetByName(firstname, lastname string) (*model.User, error)
	GetAll() ([]model.User, error)
	Delete(id int) error
}

// UserService содержит бизнес-логику, связанную с пользователями.
type UserService struct {
	userRepo UserRepository
}

// NewUserService создает новый сервис пользователей.
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser регистрирует нового пользователя. Пара (firstname, lastname)
// должна быть уникальна: предварительная проверка дает быстрый отказ,
// ограничение базы страхует от конкурентной вставки.
func (s *UserService) CreateUser(firstname, lastname string) (*model.User, error) {
	existing, err := s.userRepo.GetByName(firstname, lastname)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("пользователь %s %s уже существует: %w", firstname, lastname, apperrors.ErrAlreadyExists)
	}

	user := &model.User{Firstname: firstname, Lastname: lastname}
	id, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetUserByID возвращает пользователя по ID.
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAllUsers возвращает всех пользователей.
func (s *UserService) GetAllUsers() ([]model.User, error) {
	return s.userRepo.GetAll()
}

// DeleteUser удаляет пользователя по ID. Защита пользователя по умолчанию
// выполняется на уровне обработчиков, а не здесь.
func (s *UserService) DeleteUser(id int) error {
	return s.userRepo.Delete(id)
}
