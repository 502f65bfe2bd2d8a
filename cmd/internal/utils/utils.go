package utils

import (
	"reflect"
	"strings"
	"time"
)

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func FromEpoch(rfc string) (int64, error) {
	t, err := ParseTime(rfc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ParseTime parses an RFC3339 timestamp into UTC.
func ParseTime(rfc string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, rfc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DayBounds returns the UTC start of the day "YYYY-MM-DD" and the start of the
// next day, as epoch millis.
func DayBounds(day string) (int64, int64, error) {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return 0, 0, err
	}
	start := t.UTC()
	return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli(), nil
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String {
				field.Elem().SetString(sanitizeString(field.Elem().String()))
			}

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
