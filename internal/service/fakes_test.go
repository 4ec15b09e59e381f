package service

import (
	"fmt"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/weatherapi"
)

// Фейковые хранилища в памяти повторяют контракт репозиториев, включая
// перевод нарушений уникальности в ErrAlreadyExists.

type fakeUserRepo struct {
	users  map[int]model.User
	nextID int
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int]model.User{}, nextID: 1}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) (int, error) {
	for _, u := range r.users {
		if u.Firstname == user.Firstname && u.Lastname == user.Lastname {
			return 0, fmt.Errorf("пользователь %s %s: %w", user.Firstname, user.Lastname, apperrors.ErrAlreadyExists)
		}
	}
	id := r.nextID
	r.nextID++
	stored := *user
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(id int) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("пользователь с id %d: %w", id, apperrors.ErrNotFound)
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByName(firstname, lastname string) (*model.User, error) {
	for _, u := range r.users {
		if u.Firstname == firstname && u.Lastname == lastname {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]model.User, error) {
	users := []model.User{}
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(id int) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("пользователь с id %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

type fakeLocationRepo struct {
	locations map[int]model.Location
	nextID    int
	createErr error
}

func newFakeLocationRepo(locations ...model.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{locations: map[int]model.Location{}, nextID: 1}
	for _, l := range locations {
		r.locations[l.ID] = l
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
	return r
}

func (r *fakeLocationRepo) Create(location *model.Location) (int, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, l := range r.locations {
		if l.Latitude == location.Latitude && l.Longitude == location.Longitude {
			return 0, fmt.Errorf("локация %s: %w", location.Name, apperrors.ErrAlreadyExists)
		}
	}
	id := r.nextID
	r.nextID++
	stored := *location
	stored.ID = id
	r.locations[id] = stored
	return id, nil
}

func (r *fakeLocationRepo) GetByID(id int) (*model.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, fmt.Errorf("локация с id %d: %w", id, apperrors.ErrNotFound)
	}
	return &l, nil
}

func (r *fakeLocationRepo) GetByName(name string) (*model.Location, error) {
	for _, l := range r.locations {
		if l.Name == name {
			location := l
			return &location, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByCoordinates(latitude, longitude float64) (*model.Location, error) {
	for _, l := range r.locations {
		if l.Latitude == latitude && l.Longitude == longitude {
			location := l
			return &location, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetAll() ([]model.Location, error) {
	locations := []model.Location{}
	for _, l := range r.locations {
		locations = append(locations, l)
	}
	return locations, nil
}

func (r *fakeLocationRepo) Delete(id int) error {
	if _, ok := r.locations[id]; !ok {
		return fmt.Errorf("локация с id %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.locations, id)
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[int]model.Favorite
	nextID    int
	createErr error
}

func newFakeFavoriteRepo(favorites ...model.Favorite) *fakeFavoriteRepo {
	r := &fakeFavoriteRepo{favorites: map[int]model.Favorite{}, nextID: 1}
	for _, f := range favorites {
		r.favorites[f.ID] = f
		if f.ID >= r.nextID {
			r.nextID = f.ID + 1
		}
	}
	return r
}

func (r *fakeFavoriteRepo) Create(favorite *model.Favorite) (int, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, f := range r.favorites {
		if f.User.ID == favorite.User.ID &&
			(f.Name == favorite.Name || f.Location.ID == favorite.Location.ID) {
			return 0, fmt.Errorf("избранное %s: %w", favorite.Name, apperrors.ErrAlreadyExists)
		}
	}
	id := r.nextID
	r.nextID++
	stored := *favorite
	stored.ID = id
	r.favorites[id] = stored
	return id, nil
}

func (r *fakeFavoriteRepo) GetByID(id int) (*model.Favorite, error) {
	f, ok := r.favorites[id]
	if !ok {
		return nil, fmt.Errorf("избранное с id %d: %w", id, apperrors.ErrNotFound)
	}
	return &f, nil
}

func (r *fakeFavoriteRepo) GetAll() ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	for _, f := range r.favorites {
		favorites = append(favorites, f)
	}
	return favorites, nil
}

func (r *fakeFavoriteRepo) GetByUserID(userID int) ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	for _, f := range r.favorites {
		if f.User.ID == userID {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (r *fakeFavoriteRepo) ExistsByNameAndUserID(name string, userID int) (bool, error) {
	for _, f := range r.favorites {
		if f.Name == name && f.User.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) ExistsByLocationAndUserID(locationID, userID int) (bool, error) {
	for _, f := range r.favorites {
		if f.Location.ID == locationID && f.User.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) Delete(id int) error {
	if _, ok := r.favorites[id]; !ok {
		return fmt.Errorf("избранное с id %d: %w", id, apperrors.ErrNotFound)
	}
	delete(r.favorites, id)
	return nil
}

// fakeAPI подменяет все внешние сервисы погоды и считает обращения к ним.
type fakeAPI struct {
	geocoding    *weatherapi.GeocodingResult
	geocodingErr error
	station      string
	stationErr   error
	forecast     *weatherapi.ForecastResponse
	forecastErr  error

	searchCalls   int
	stationCalls  int
	forecastCalls int
}

func (a *fakeAPI) SearchLocation(name string) (*weatherapi.GeocodingResult, error) {
	a.searchCalls++
	if a.geocodingErr != nil {
		return nil, a.geocodingErr
	}
	return a.geocoding, nil
}

func (a *fakeAPI) NearestStation(latitude, longitude float64) (string, error) {
	a.stationCalls++
	if a.stationErr != nil {
		return "", a.stationErr
	}
	return a.station, nil
}

func (a *fakeAPI) HourlyForecast(latitude, longitude float64) (*weatherapi.ForecastResponse, error) {
	a.forecastCalls++
	if a.forecastErr != nil {
		return nil, a.forecastErr
	}
	return a.forecast, nil
}

// viennaAPI возвращает fakeAPI с ответами внешних сервисов для Вены.
func viennaAPI() *fakeAPI {
	return &fakeAPI{
		geocoding: &weatherapi.GeocodingResult{
			Name:      "Vienna",
			Country:   "Austria",
			Latitude:  48.20849,
			Longitude: 16.37208,
			Elevation: 171.0,
		},
		station: "LOWW",
	}
}

// vienna возвращает сохраненную локацию Вены.
func vienna(id int) model.Location {
	return model.Location{
		ID:        id,
		Name:      "Vienna,Austria",
		Latitude:  48.20849,
		Longitude: 16.37208,
		Elevation: 171.0,
		Icao:      "LOWW",
	}
}
