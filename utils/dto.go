package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims string fields and rounds float64 fields to cents on a
// pointer-to-struct DTO. Pointer fields are followed when non-nil, so the same
// call serves create DTOs and patch DTOs. Fields tagged `normalize:"-"` (rates,
// quantities) are left alone.
func NormalizeDTO(dto any) {
	s, ok := structOf(dto)
	if !ok {
		return
	}
	t := s.Type()
	for i := 0; i < s.NumField(); i++ {
		if t.Field(i).Tag.Get("normalize") == "-" {
			continue
		}
		f := s.Field(i)
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				continue
			}
			f = f.Elem()
		}
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Float64:
			f.SetFloat(Round2(f.Float()))
		}
	}
}

// UpdatesFromPtrDTO builds a column map from the non-nil pointer fields of a
// patch DTO, keyed by the json tag name. A reference field (json name ending
// in "_id") set to "" maps to nil so the reference is cleared.
func UpdatesFromPtrDTO(dto any, renames map[string]string) map[string]any {
	res := make(map[string]any)
	s, ok := structOf(dto)
	if !ok {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := strings.Split(sf.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if alt, ok := renames[name]; ok && alt != "" {
			name = alt
		}
		val := fv.Elem().Interface()
		if str, isStr := val.(string); isStr && str == "" && strings.HasSuffix(name, "_id") {
			val = nil
		}
		res[name] = val
	}
	return res
}

func structOf(dto any) (reflect.Value, bool) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, false
	}
	s := v.Elem()
	return s, s.Kind() == reflect.Struct
}
