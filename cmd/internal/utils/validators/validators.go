package validators

import (
	"meetapp/cmd/internal/utils"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IsIso8601 accepts RFC3339 timestamps, e.g. "2030-01-01T18:00:00Z".
func IsIso8601(fl validator.FieldLevel) bool {
	_, err := utils.ParseTime(fl.Field().String())
	return err == nil
}

// JSONTagName makes validation errors report the JSON field name.
func JSONTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
