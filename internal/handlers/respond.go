package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validationOnce sync.Once

// registerValidation makes validator report json field names.
func registerValidation() {
	validationOnce.Do(func() {
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

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// normalizer cleans decoded input before validation runs, so the rules apply
// to the values that get stored.
type normalizer interface {
	normalize()
}

var errEmptyBody = errors.New("empty request body")

// bindJSON decodes, normalizes and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := decodeJSON(c, obj); err != nil {
		respondBindError(c, err)
		return false
	}
	if n, ok := obj.(normalizer); ok {
		n.normalize()
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func decodeJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return errEmptyBody
	}
	return json.NewDecoder(c.Request.Body).Decode(obj)
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation error",
		"errors":  fields,
	})
}

// fieldPath drops the root struct name: "chatPayload.messages[0].role" -> "messages[0].role".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
