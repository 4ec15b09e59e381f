package service

import (
	"testing"

	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/apperrors"
	"github.com/kammererlara/swm2-2at-kammerer-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteService(users *fakeUserRepo, locations *fakeLocationRepo,
	favorites *fakeFavoriteRepo, api *fakeAPI) *FavoriteService {
	return NewFavoriteService(favorites,
		NewLocationService(locations, api),
		NewUserService(users))
}

func TestCreateFavoriteResolvesNewLocation(t *testing.T) {
	api := viennaAPI()
	svc := newFavoriteService(
		newFakeUserRepo(model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}),
		newFakeLocationRepo(), newFakeFavoriteRepo(), api)

	favorite, err := svc.CreateFavorite("Vienna", 1, "Home")
	require.NoError(t, err)

	assert.Equal(t, "Home", favorite.Name)
	assert.Equal(t, 1, favorite.User.ID)
	assert.Equal(t, "Vienna,Austria", favorite.Location.Name)
	assert.Equal(t, 48.20849, favorite.Location.Latitude)
	assert.Equal(t, 16.37208, favorite.Location.Longitude)
	assert.Equal(t, 171.0, favorite.Location.Elevation)
	assert.Equal(t, "LOWW", favorite.Location.Icao)
	assert.NotZero(t, favorite.ID)
}

func TestCreateFavoriteDuplicateName(t *testing.T) {
	api := viennaAPI()
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	favorites := newFakeFavoriteRepo(model.Favorite{ID: 1, Name: "Home", User: user, Location: vienna(1)})
	svc := newFavoriteService(newFakeUserRepo(user), newFakeLocationRepo(vienna(1)), favorites, api)

	// Дубликат имени у того же пользователя, даже с другой локацией
	_, err := svc.CreateFavorite("Graz", 1, "Home")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	// Имя проверяется первым, до любых внешних вызовов
	assert.Equal(t, 0, api.searchCalls)
}

func TestCreateFavoriteUserNotFound(t *testing.T) {
	api := viennaAPI()
	svc := newFavoriteService(newFakeUserRepo(), newFakeLocationRepo(), newFakeFavoriteRepo(), api)

	_, err := svc.CreateFavorite("Vienna", 7, "Home")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 0, api.searchCalls)
}

func TestCreateFavoriteLocationAlreadyFavorited(t *testing.T) {
	api := viennaAPI()
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	favorites := newFakeFavoriteRepo(model.Favorite{ID: 1, Name: "Home", User: user, Location: vienna(1)})
	svc := newFavoriteService(newFakeUserRepo(user), newFakeLocationRepo(vienna(1)), favorites, api)

	// Та же локация под другим именем
	_, err := svc.CreateFavorite("Vienna,Austria", 1, "Work")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCreateFavoriteExistingLocationSkipsResolver(t *testing.T) {
	api := viennaAPI()
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	svc := newFavoriteService(newFakeUserRepo(user), newFakeLocationRepo(vienna(3)),
		newFakeFavoriteRepo(), api)

	favorite, err := svc.CreateFavorite("Vienna,Austria", 1, "Home")
	require.NoError(t, err)
	assert.Equal(t, 3, favorite.Location.ID)
	// Повторное разрешение имени не обращается к геокодированию
	assert.Equal(t, 0, api.searchCalls)
}

func TestCreateFavoriteLocationCreationFailurePropagates(t *testing.T) {
	api := viennaAPI()
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	locations := newFakeLocationRepo()
	locations.createErr = apperrors.ErrAlreadyExists
	svc := newFavoriteService(newFakeUserRepo(user), locations, newFakeFavoriteRepo(), api)

	// Конкурентная вставка той же точки: отказ не глотается и не повторяется
	_, err := svc.CreateFavorite("Vienna", 1, "Home")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCreateFavoriteInsertLoserGetsAlreadyExists(t *testing.T) {
	// Обе предварительные проверки прошли, финальную вставку решило
	// ограничение базы - проигравший получает ErrAlreadyExists.
	api := viennaAPI()
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	favorites := newFakeFavoriteRepo()
	favorites.createErr = apperrors.ErrAlreadyExists
	svc := newFavoriteService(newFakeUserRepo(user), newFakeLocationRepo(vienna(1)), favorites, api)

	_, err := svc.CreateFavorite("Vienna,Austria", 1, "Home")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestGetFavoritesByUserID(t *testing.T) {
	user := model.User{ID: 1, Firstname: "Max", Lastname: "Mustermann"}
	other := model.User{ID: 2, Firstname: "Erika", Lastname: "Musterfrau"}
	favorites := newFakeFavoriteRepo(
		model.Favorite{ID: 1, Name: "Home", User: user, Location: vienna(1)},
		model.Favorite{ID: 2, Name: "Dach", User: other, Location: vienna(1)},
	)
	svc := newFavoriteService(newFakeUserRepo(user, other), newFakeLocationRepo(vienna(1)), favorites, viennaAPI())

	list, err := svc.GetFavoritesByUserID(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Home", list[0].Name)
}

func TestDeleteFavoriteNotFound(t *testing.T) {
	svc := newFavoriteService(newFakeUserRepo(), newFakeLocationRepo(), newFakeFavoriteRepo(), viennaAPI())
	assert.ErrorIs(t, svc.DeleteFavorite(9), apperrors.ErrNotFound)
}
