package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lkzdsb-lab/postsvc/internal/middleware"
	"github.com/lkzdsb-lab/postsvc/internal/service"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes validator report fields by their json name ("title"),
// not the Go name ("Title").
func UseJSONFieldNames() {
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

// bindError converts a gin binding failure into a ValidationError located under loc.
func bindError(err error, loc string) *service.ValidationError {
	verr := &service.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Errors = append(verr.Errors, fieldError(loc, fe))
		}
	case errors.Is(err, io.EOF):
		verr.Errors = append(verr.Errors, service.FieldError{Loc: []string{loc}, Msg: "field required", Type: "value_error.missing"})
	case errors.As(err, &syntaxErr):
		verr.Errors = append(verr.Errors, service.FieldError{Loc: []string{loc}, Msg: "JSON decode error: " + syntaxErr.Error(), Type: "value_error.jsondecode"})
	case errors.As(err, &typeErr):
		verr.Errors = append(verr.Errors, service.FieldError{
			Loc:  append([]string{loc}, strings.Split(typeErr.Field, ".")...),
			Msg:  "value is not a valid " + typeErr.Type.String(),
			Type: "type_error",
		})
	case errors.As(err, &timeErr):
		verr.Errors = append(verr.Errors, service.FieldError{Loc: []string{loc, "publication_date"}, Msg: "invalid datetime format", Type: "value_error.datetime"})
	case loc == "query":
		verr.Errors = append(verr.Errors, service.FieldError{Loc: []string{loc}, Msg: "value is not a valid integer", Type: "type_error.integer"})
	default:
		verr.Errors = append(verr.Errors, service.FieldError{Loc: []string{loc}, Msg: err.Error(), Type: "value_error"})
	}
	return verr
}

func fieldError(loc string, fe validator.FieldError) service.FieldError {
	out := service.FieldError{Loc: []string{loc, fe.Field()}}
	switch fe.Tag() {
	case "required":
		out.Msg, out.Type = "field required", "value_error.missing"
	case "max":
		out.Msg, out.Type = "ensure this value has at most "+fe.Param()+" characters", "value_error.any_str.max_length"
	case "min":
		out.Msg, out.Type = "ensure this value is greater than or equal to "+fe.Param(), "value_error.number.not_ge"
	default:
		out.Msg, out.Type = "failed on the '"+fe.Tag()+"' rule", "value_error"
	}
	return out
}

// writeError maps service errors onto HTTP statuses. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger zerolog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Errors})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": http.StatusText(http.StatusNotFound)})
	default:
		_ = c.Error(err)
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": http.StatusText(http.StatusInternalServerError)})
	}
}
