package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the json name of a field.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrEmailRequired):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:  "validation failed",
			Fields: map[string]string{"email": err.Error()},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		slog.Error("request failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
	}
}

// respondBindError reports a request body that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
	case errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrPriceDecimals),
		errors.Is(err, models.ErrPriceMaxDigits):
		fields["price"] = err.Error()
	case errors.As(err, &typeErr):
		fields[typeErr.Field] = fmt.Sprintf("expected %s", typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "malformed JSON body"})
		return
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "validation failed", Fields: fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
