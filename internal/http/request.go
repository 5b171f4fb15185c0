package http

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/dto"
)

// Validator is implemented by request bodies that check their own fields after binding.
type Validator interface {
	Validate() error
}

// BuildRequest binds the JSON body of c into a new T.
// A value of the wrong JSON type is reported as a *dto.ValidationError on its field path.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindingError(err)
	}
	return &req, nil
}

// BuildRequestAndValidate binds the body and runs Validate when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func bindingError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &dto.ValidationError{
			Field:   typeErr.Field,
			Message: "must be " + jsonKind(typeErr.Type.Kind()),
		}
	}
	return err
}

func jsonKind(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a " + kind.String()
	}
}
