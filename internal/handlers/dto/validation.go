package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterJSONFieldNames faz o validator do gin reportar os nomes JSON dos campos
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
}

// TranslateValidationErrors converte o erro de binding em erros por campo traduzidos.
// Erros que não vêm do validator (JSON malformado) viram uma única entrada sem campo.
func TranslateValidationErrors(c *gin.Context, err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		key := "validation." + fe.Tag()
		params := map[string]any{"Field": fe.Field(), "Param": fe.Param()}

		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.default", params)
		}

		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: message,
			Tag:     fe.Tag(),
			Value:   valueString(fe.Value()),
		})
	}
	return result
}

func valueString(value any) string {
	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.IsZero() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
