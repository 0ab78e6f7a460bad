package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-favorites/backend/internal/api/apierror"
	"github.com/pageza/recipe-favorites/backend/internal/middleware"
	"github.com/pageza/recipe-favorites/backend/internal/service"
	"github.com/pageza/recipe-favorites/backend/internal/types"
)

type FavoriteHandler struct {
	favorites service.IFavoriteService
	log       logrus.FieldLogger
}

func NewFavoriteHandler(favorites service.IFavoriteService, log logrus.FieldLogger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		log:       log,
	}
}

// RegisterRoutes mounts the favorites resource on router. writeLimits run in
// front of the create and delete routes only.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, writeLimits ...gin.HandlerFunc) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("/:userId", h.ListFavorites)
		favorites.POST("", chain(writeLimits, h.CreateFavorite)...)
		favorites.DELETE("/:userId/:recipeId", chain(writeLimits, h.DeleteFavorite)...)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID := c.Param("userId")

	favorites, err := h.favorites.ListByUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RequestLogger(c, h.log).WithError(err).WithField("user_id", userID).Error("failed to fetch favorites")
		apierror.Respond(c, apierror.InternalServerError, "Failed to fetch records", nil)
		return
	}

	c.JSON(http.StatusOK, types.ListFavoritesResponse{
		Success:      true,
		RecordsCount: len(favorites),
		Favourites:   favorites,
	})
}

func (h *FavoriteHandler) CreateFavorite(c *gin.Context) {
	var req types.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RequestLogger(c, h.log).WithError(err).Debug("rejected favorite create")
		rejectBody(c, err)
		return
	}

	log := middleware.RequestLogger(c, h.log).WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"recipe_id": req.RecipeID,
	})
	ctx := c.Request.Context()

	exists, err := h.favorites.Exists(ctx, req.UserID, req.RecipeID)
	if err != nil {
		log.WithError(err).Error("failed to check favorite")
		apierror.Internal(c)
		return
	}
	if exists {
		h.conflict(c)
		return
	}

	created, err := h.favorites.Insert(ctx, req.Favorite())
	if errors.Is(err, service.ErrFavoriteExists) {
		h.conflict(c)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to create favorite")
		apierror.Internal(c)
		return
	}

	log.Info("favorite created")
	c.JSON(http.StatusCreated, types.CreateFavoriteResponse{
		Success: true,
		Data:    created,
	})
}

func (h *FavoriteHandler) DeleteFavorite(c *gin.Context) {
	userID := c.Param("userId")
	rawRecipeID := c.Param("recipeId")

	recipeID, err := strconv.ParseInt(rawRecipeID, 10, 32)
	if err != nil {
		apierror.Respond(c, apierror.InvalidRecipeID, "Invalid recipe id", nil)
		return
	}

	log := middleware.RequestLogger(c, h.log).WithFields(logrus.Fields{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	deleted, err := h.favorites.DeleteByKey(c.Request.Context(), userID, int32(recipeID))
	if err != nil {
		log.WithError(err).Error("failed to delete favorite")
		apierror.Internal(c)
		return
	}
	if deleted == nil {
		apierror.Respond(c, apierror.FavoriteNotFound,
			fmt.Sprintf("Record with recipe id %s not associated with userId %s", rawRecipeID, userID), nil)
		return
	}

	log.Info("favorite deleted")
	c.JSON(http.StatusOK, types.DeleteFavoriteResponse{
		Success:       true,
		DeletedRecord: deleted,
	})
}

func (h *FavoriteHandler) conflict(c *gin.Context) {
	apierror.Respond(c, apierror.FavoriteConflict, "Recipe already in favorites", nil)
}

// rejectBody answers a create body that failed to bind. A value of the wrong
// type or out of range is reported against its field; anything else,
// including malformed JSON, is a missing-fields error.
func rejectBody(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "recipeId":
		apierror.Respond(c, apierror.InvalidRecipeID, "Invalid recipe id", nil)
	case errors.As(err, &typeErr):
		apierror.Respond(c, apierror.InvalidFieldType, "Invalid field type", gin.H{"field": typeErr.Field})
	default:
		apierror.Respond(c, apierror.MissingRequiredFields, "Missing required fields", gin.H{
			"mandateFields": types.MandatoryFavoriteFields,
		})
	}
}

func chain(before []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(before)+1)
	handlers = append(handlers, before...)
	return append(handlers, handler)
}
