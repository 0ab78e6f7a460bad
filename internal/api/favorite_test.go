package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-favorites/backend/internal/logger"
	"github.com/pageza/recipe-favorites/backend/internal/mocks"
	"github.com/pageza/recipe-favorites/backend/internal/model"
	"github.com/pageza/recipe-favorites/backend/internal/service"
)

var errStoreDown = errors.New("connection refused")

func setupFavoriteRouter(svc service.IFavoriteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, svc, logger.Discard())
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func TestListFavorites(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	favorites := []model.Favorite{
		{ID: uuid.New(), UserID: "u1", RecipeID: 42, Title: "Pasta"},
		{ID: uuid.New(), UserID: "u1", RecipeID: 7, Title: "Soup"},
	}
	svc.On("ListByUser", mock.Anything, "u1").Return(favorites, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodGet, "/api/favorites/u1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["recordsCount"])
	require.Len(t, resp["favourites"], 2)
	first := resp["favourites"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(42), first["recipeId"])
	svc.AssertExpectations(t)
}

func TestListFavoritesEmpty(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("ListByUser", mock.Anything, "u1").Return([]model.Favorite{}, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodGet, "/api/favorites/u1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["recordsCount"])
	assert.Equal(t, []interface{}{}, resp["favourites"])
}

func TestListFavoritesStoreFault(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("ListByUser", mock.Anything, "u1").Return(nil, errStoreDown)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodGet, "/api/favorites/u1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch records", resp["error"])
	assert.Equal(t, "internal_server_error", resp["code"])
	assert.Equal(t, false, resp["success"])
}

func TestCreateFavorite(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("Exists", mock.Anything, "u1", int32(42)).Return(false, nil)
	svc.On("Insert", mock.Anything, mock.MatchedBy(func(f *model.Favorite) bool {
		return f.UserID == "u1" && f.RecipeID == 42 && f.Title == "Pasta" &&
			f.Image != nil && *f.Image == "https://example.com/pasta.jpg" &&
			f.CookTime != nil && *f.CookTime == "30" &&
			f.Serving == nil
	})).Return(&model.Favorite{ID: uuid.New(), UserID: "u1", RecipeID: 42, Title: "Pasta", CookTime: model.NewScalar("30")}, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites",
		`{"userId":"u1","recipeId":42,"title":"Pasta","image":"https://example.com/pasta.jpg","cookTime":30}`)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["recipeId"])
	assert.Equal(t, "30", data["cookTime"])
	assert.NotEmpty(t, data["id"])
	svc.AssertExpectations(t)
}

func TestCreateFavoriteMissingFields(t *testing.T) {
	bodies := map[string]string{
		"no userId":    `{"recipeId":42,"title":"Pasta"}`,
		"no recipeId":  `{"userId":"u1","title":"Pasta"}`,
		"no title":     `{"userId":"u1","recipeId":42}`,
		"empty title":  `{"userId":"u1","recipeId":42,"title":""}`,
		"zero recipe":  `{"userId":"u1","recipeId":0,"title":"Pasta"}`,
		"null userId":  `{"userId":null,"recipeId":42,"title":"Pasta"}`,
		"empty body":   ``,
		"not json":     `userId=u1`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := new(mocks.MockFavoriteService)

			w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing required fields", resp["error"])
			assert.Equal(t, "userId, recipeId, title", resp["mandateFields"])
			svc.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateFavoriteInvalidTypes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		code  string
		field string
	}{
		{"string recipe id", `{"userId":"u1","recipeId":"42","title":"Pasta"}`, "invalid_recipe_id", ""},
		{"fractional recipe id", `{"userId":"u1","recipeId":42.5,"title":"Pasta"}`, "invalid_recipe_id", ""},
		{"recipe id above int32", `{"userId":"u1","recipeId":2147483648,"title":"Pasta"}`, "invalid_recipe_id", ""},
		{"recipe id far above int32", `{"userId":"u1","recipeId":3000000000,"title":"Pasta"}`, "invalid_recipe_id", ""},
		{"numeric title", `{"userId":"u1","recipeId":42,"title":7}`, "invalid_field_type", "title"},
		{"bool serving", `{"userId":"u1","recipeId":42,"title":"Pasta","serving":true}`, "invalid_field_type", "serving"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockFavoriteService)

			w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, resp["code"])
			if tt.field != "" {
				assert.Equal(t, tt.field, resp["field"])
			}
			svc.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateFavoriteMaxRecipeID(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("Exists", mock.Anything, "u1", int32(2147483647)).Return(false, nil)
	svc.On("Insert", mock.Anything, mock.AnythingOfType("*model.Favorite")).
		Return(&model.Favorite{ID: uuid.New(), UserID: "u1", RecipeID: 2147483647, Title: "Pasta"}, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites",
		`{"userId":"u1","recipeId":2147483647,"title":"Pasta"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(2147483647), resp["data"].(map[string]interface{})["recipeId"])
	svc.AssertExpectations(t)
}

func TestCreateFavoriteAlreadyExists(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("Exists", mock.Anything, "u1", int32(42)).Return(true, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites",
		map[string]interface{}{"userId": "u1", "recipeId": 42, "title": "Pasta"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Recipe already in favorites", resp["error"])
	assert.Equal(t, "favorite_conflict", resp["code"])
	svc.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateFavoriteLostRace(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("Exists", mock.Anything, "u1", int32(42)).Return(false, nil)
	svc.On("Insert", mock.Anything, mock.Anything).Return(nil, service.ErrFavoriteExists)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites",
		map[string]interface{}{"userId": "u1", "recipeId": 42, "title": "Pasta"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Recipe already in favorites", resp["error"])
}

func TestCreateFavoriteStoreFaults(t *testing.T) {
	body := map[string]interface{}{"userId": "u1", "recipeId": 42, "title": "Pasta"}

	t.Run("exists", func(t *testing.T) {
		svc := new(mocks.MockFavoriteService)
		svc.On("Exists", mock.Anything, "u1", int32(42)).Return(false, errStoreDown)

		w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Internal server error", resp["error"])
	})

	t.Run("insert", func(t *testing.T) {
		svc := new(mocks.MockFavoriteService)
		svc.On("Exists", mock.Anything, "u1", int32(42)).Return(false, nil)
		svc.On("Insert", mock.Anything, mock.Anything).Return(nil, errStoreDown)

		w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodPost, "/api/favorites", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Internal server error", resp["error"])
	})
}

func TestDeleteFavorite(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	deleted := &model.Favorite{ID: uuid.New(), UserID: "u1", RecipeID: 42, Title: "Pasta"}
	svc.On("DeleteByKey", mock.Anything, "u1", int32(42)).Return(deleted, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodDelete, "/api/favorites/u1/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	record := resp["deletedRecord"].(map[string]interface{})
	assert.Equal(t, float64(42), record["recipeId"])
	assert.Equal(t, deleted.ID.String(), record["id"])
}

func TestDeleteFavoriteNotFound(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("DeleteByKey", mock.Anything, "u1", int32(42)).Return(nil, nil)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodDelete, "/api/favorites/u1/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Record with recipe id 42 not associated with userId u1", resp["error"])
	assert.Equal(t, "favorite_not_found", resp["code"])
}

func TestDeleteFavoriteInvalidRecipeID(t *testing.T) {
	for _, raw := range []string{"abc", "4.2", "42abc", "2147483648", "3000000000", "-2147483649"} {
		t.Run(raw, func(t *testing.T) {
			svc := new(mocks.MockFavoriteService)

			w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodDelete, "/api/favorites/u1/"+raw, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid_recipe_id", resp["code"])
			svc.AssertNotCalled(t, "DeleteByKey", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteFavoriteStoreFault(t *testing.T) {
	svc := new(mocks.MockFavoriteService)
	svc.On("DeleteByKey", mock.Anything, "u1", int32(42)).Return(nil, errStoreDown)

	w, resp := doJSON(t, setupFavoriteRouter(svc), http.MethodDelete, "/api/favorites/u1/42", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "internal_server_error", resp["code"])
}

func TestWriteLimitsOnlyGuardMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mocks.MockFavoriteService)
	svc.On("ListByUser", mock.Anything, "u1").Return([]model.Favorite{}, nil)

	blocked := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	router := gin.New()
	RegisterRoutes(router, svc, logger.Discard(), blocked)

	w, _ := doJSON(t, router, http.MethodGet, "/api/favorites/u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/favorites", map[string]interface{}{"userId": "u1", "recipeId": 1, "title": "x"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/favorites/u1/1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	svc.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
