package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/internal/booking"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
)

// getDB returns the request-scoped database handle set by DatabaseMiddleware.
func getDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db.(*gorm.DB).WithContext(c.Request.Context()), true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		helpers.RespondWithValidationError(c, helpers.BindingErrorFields(err))
		return false
	}
	return true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := helpers.StringToID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

// respondStoreError maps store and validation errors to HTTP responses.
func respondStoreError(c *gin.Context, err error, action string) {
	var validationErr *booking.ValidationError
	switch {
	case errors.As(err, &validationErr):
		helpers.RespondWithValidationError(c, validationErr.Fields)
	case errors.Is(err, gorm.ErrRecordNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		helpers.RespondWithError(c, http.StatusBadRequest, "The request conflicts with existing data.")
	default:
		log.Printf("%s: %v", action, err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to "+action+".")
	}
}

// exists reports whether a row of model matches the condition, ignoring excludeID.
func exists(db *gorm.DB, model interface{}, excludeID uint, condition string, args ...interface{}) (bool, error) {
	var count int64
	query := db.Model(model).Where(condition, args...)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func deleteByID(c *gin.Context, model interface{}, what string) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	db, ok := getDB(c)
	if !ok {
		return
	}

	result := db.Delete(model, id)
	if result.Error != nil {
		respondStoreError(c, result.Error, "delete "+what)
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Not found.")
		return
	}

	c.Status(http.StatusNoContent)
}
