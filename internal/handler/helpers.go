package handler

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/mnk3936/Highway-metals/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Validate decimals as float64 so numeric tags (gt, gte) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate binds the JSON body into obj and runs struct validation.
// On failure it writes the error response and returns false.
func bindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("malformed request body"))
		return false
	}
	return validateStruct(c, obj)
}

// bindQueryAndValidate does the same for query-string filters.
func bindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("malformed query parameters"))
		return false
	}
	return validateStruct(c, obj)
}

func validateStruct(c *gin.Context, obj interface{}) bool {
	err := validate.Struct(obj)
	if err == nil {
		return true
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("validation failed"))
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return "invalid value"
	}
}

// pathUUID parses the :id path parameter, writing a 400 on failure.
func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id, expected a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
